package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate builds a report from the document's latest analysis
func (h *ReportHandler) Generate(c *gin.Context) {
	rep, err := h.reports.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// List returns a document's reports, newest first
func (h *ReportHandler) List(c *gin.Context) {
	reps, err := h.reports.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reps})
}
