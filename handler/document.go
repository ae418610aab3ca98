package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
	store     *service.DocumentStore
	registry  *service.Registry
}

func NewDocumentHandler(documents *service.DocumentService, store *service.DocumentStore, registry *service.Registry) *DocumentHandler {
	return &DocumentHandler{documents: documents, store: store, registry: registry}
}

// Upload handles document file upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	contractType := c.PostForm("contract_type")
	if contractType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract_type is required"})
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), header.Filename, contractType, file, header.Size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// List returns the current document snapshot with aggregate stats
func (h *DocumentHandler) List(c *gin.Context) {
	snap := h.store.Refresh(c.Request.Context())
	if snap.Err != "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"documents": snap.Documents,
			"error":     snap.Err,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents": snap.Documents,
		"stats":     snap.Stats,
	})
}

// Get returns a single document
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.registry.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetStatus returns the processing status of a document
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	doc, err := h.registry.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                doc.ID,
		"processing_status": doc.Status,
		"error_message":     doc.ErrorMessage,
	})
}

// Extract runs text extraction on a stored document
func (h *DocumentHandler) Extract(c *gin.Context) {
	doc, err := h.documents.ExtractText(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete removes a document and everything derived from it
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// Stats returns aggregate document counts
func (h *DocumentHandler) Stats(c *gin.Context) {
	stats, err := h.registry.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
