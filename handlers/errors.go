package handlers

import (
	"errors"
	"net/http"
	"strings"

	"voltcare/services/platform"
	"voltcare/services/wizard"
	"voltcare/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Validation errors are
// field-targeted 400s; collaborator failures surface the backend's own
// messages; everything else falls back to a generic retry prompt.
func respondError(c *gin.Context, err error) {
	var ve *wizard.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}

	var collabErr *platform.CollaboratorError
	if errors.As(err, &collabErr) {
		msg := strings.Join(collabErr.Messages, "; ")
		if msg == "" {
			msg = "The service is temporarily unavailable. Please try again."
		}
		utils.JSONError(c, http.StatusBadGateway, msg, "")
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.", err.Error())
}
