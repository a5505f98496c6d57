package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filebox-backend/internal/files"
	"filebox-backend/internal/shared/config"
	"filebox-backend/internal/shared/server/middleware"
	"filebox-backend/internal/shared/server/respond"
)

// RouterDeps carries the constructed handlers the router needs.
type RouterDeps struct {
	Config       config.Config
	FilesHandler *files.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Routes live at the engine root; the published surface has no version
// prefix.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/ping", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, "pong")
	})
	deps.FilesHandler.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
