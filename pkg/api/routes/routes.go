package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jsgroupfr/merge-videos-api/pkg/api/handlers"
	"github.com/jsgroupfr/merge-videos-api/pkg/api/middleware"
	"github.com/jsgroupfr/merge-videos-api/pkg/auth"
)

// Deps carries everything the routes need
type Deps struct {
	Authenticator *auth.Authenticator
	Video         *handlers.VideoHandler
	Logger        zerolog.Logger
}

// New builds the gin engine with all routes registered
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Everything else requires the API key
	protected := r.Group("/")
	protected.Use(middleware.APIKey(d.Authenticator))

	protected.POST("/v1/videos", d.Video.Upload)

	return r
}
