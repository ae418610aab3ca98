package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/service"
)

type SettingsHandler struct {
	registry *service.Registry
}

func NewSettingsHandler(registry *service.Registry) *SettingsHandler {
	return &SettingsHandler{registry: registry}
}

type setSettingRequest struct {
	Value string `json:"value"`
}

// List returns every persisted setting. API key values are masked.
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.registry.ListSettings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]model.Setting, len(settings))
	for i, s := range settings {
		if strings.HasSuffix(s.Key, "_api_key") && s.Value != "" {
			s.Value = maskSecret(s.Value)
		}
		out[i] = s
	}
	c.JSON(http.StatusOK, gin.H{"settings": out})
}

// Get returns a single setting value, masked for API keys. An unset key
// returns an empty value, not an error.
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	val, err := h.registry.GetSetting(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}

	value := ""
	if val != nil {
		value = *val
	}
	if strings.HasSuffix(key, "_api_key") && value != "" {
		value = maskSecret(value)
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// Set creates or replaces a setting. Unknown keys are stored as-is; they
// simply have no effect.
func (h *SettingsHandler) Set(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	key := c.Param("key")
	if err := h.registry.SetSetting(c.Request.Context(), key, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "message": "Setting saved"})
}

// Delete removes a setting, falling back to config defaults
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.registry.DeleteSetting(c.Request.Context(), c.Param("key")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting deleted"})
}

func maskSecret(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}
