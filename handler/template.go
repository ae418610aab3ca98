package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/model"
	"github.com/saagar210/LegalDocsReview/service"
)

type TemplateHandler struct {
	registry *service.Registry
}

func NewTemplateHandler(registry *service.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

type createTemplateRequest struct {
	Name         string  `json:"name" binding:"required"`
	ContractType string  `json:"contract_type" binding:"required"`
	Description  *string `json:"description"`
	RawText      string  `json:"raw_text" binding:"required"`
}

// Create stores a reference template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, contract_type and raw_text are required"})
		return
	}
	if !model.ValidContractType(req.ContractType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown contract type: " + req.ContractType})
		return
	}

	tpl, err := h.registry.CreateTemplate(c.Request.Context(), &model.Template{
		Name:         req.Name,
		ContractType: req.ContractType,
		Description:  req.Description,
		RawText:      req.RawText,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// List returns all templates, newest first
func (h *TemplateHandler) List(c *gin.Context) {
	tpls, err := h.registry.ListTemplates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": tpls})
}

// Get returns a single template
func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.registry.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// Delete removes a template
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.registry.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
