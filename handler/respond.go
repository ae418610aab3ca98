package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/pkg/apperr"
)

// writeError maps a classified error onto an HTTP status. Unclassified
// errors are internal.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindPrecondition, apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindEngine, apperr.KindPayload:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
