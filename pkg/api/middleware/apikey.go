package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsgroupfr/merge-videos-api/pkg/auth"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIKey guards a route group with the X-API-Key header check. An unset
// server secret aborts with 500, a bad or missing client key with 401.
func APIKey(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := authenticator.Authenticate(c.GetHeader(auth.HeaderName))
		if err != nil {
			if errors.Is(err, auth.ErrNotConfigured) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
					Code:    "INTERNAL",
					Message: "API_KEY not configured",
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    "UNAUTHORIZED",
				Message: "Invalid or missing API key",
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}
