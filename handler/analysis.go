package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/service"
)

type AnalysisHandler struct {
	analyzer *service.Analyzer
	registry *service.Registry
}

func NewAnalysisHandler(analyzer *service.Analyzer, registry *service.Registry) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, registry: registry}
}

// Analyze runs the full analysis of a document and returns the combined
// extraction and risk result
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	result, err := h.analyzer.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListExtractions returns a document's extractions, newest first
func (h *AnalysisHandler) ListExtractions(c *gin.Context) {
	exts, err := h.registry.ListExtractions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"extractions": exts})
}

// GetExtraction returns a single extraction by its id
func (h *AnalysisHandler) GetExtraction(c *gin.Context) {
	ext, err := h.registry.GetExtraction(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ext)
}

// ListRiskAssessments returns a document's risk assessments, newest first
func (h *AnalysisHandler) ListRiskAssessments(c *gin.Context) {
	ras, err := h.registry.ListRiskAssessments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"risk_assessments": ras})
}

// RiskDistribution returns counts of assessments per risk level
func (h *AnalysisHandler) RiskDistribution(c *gin.Context) {
	dist, err := h.registry.RiskDistribution(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}
