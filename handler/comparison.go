package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/service"
)

type ComparisonHandler struct {
	comparisons *service.ComparisonService
}

func NewComparisonHandler(comparisons *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons}
}

type compareRequest struct {
	DocumentAID string `json:"document_a_id" binding:"required"`
	DocumentBID string `json:"document_b_id" binding:"required"`
}

type compareTemplateRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	TemplateID string `json:"template_id" binding:"required"`
}

// Compare diffs two documents
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_a_id and document_b_id are required"})
		return
	}

	result, err := h.comparisons.Compare(c.Request.Context(), req.DocumentAID, req.DocumentBID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompareWithTemplate diffs a document against a reference template
func (h *ComparisonHandler) CompareWithTemplate(c *gin.Context) {
	var req compareTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_id and template_id are required"})
		return
	}

	result, err := h.comparisons.CompareWithTemplate(c.Request.Context(), req.DocumentID, req.TemplateID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// History returns the comparisons involving a document, newest first
func (h *ComparisonHandler) History(c *gin.Context) {
	cmps, err := h.comparisons.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparisons": cmps})
}
