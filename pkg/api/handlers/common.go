package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsgroupfr/merge-videos-api/pkg/storage"
)

// APIError is the JSON error body shared by every endpoint
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, err error) {
	switch {
	case storage.IsMisconfiguration(err):
		c.JSON(http.StatusInternalServerError, APIError{
			Code:    "INTERNAL",
			Message: "storage is not configured",
		})
	case errors.Is(err, errBadUpload):
		c.JSON(http.StatusBadRequest, APIError{
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		})
	default:
		// Transfer failures propagate here untouched
		c.JSON(http.StatusBadGateway, APIError{
			Code:    "UPSTREAM",
			Message: "upload failed",
		})
	}

	_ = c.Error(err)
}
