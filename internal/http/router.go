package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/complexparts-backend/internal/http/handlers"
	httpMW "github.com/yungbote/complexparts-backend/internal/http/middleware"
	"github.com/yungbote/complexparts-backend/internal/http/response"
	"github.com/yungbote/complexparts-backend/internal/observability"
	"github.com/yungbote/complexparts-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName enables otelgin spans when non-empty.
	ServiceName string
	CORSOrigins []string
	FrontendDir string

	PartHandler    *httpH.PartHandler
	ComplexHandler *httpH.ComplexHandler
	CountHandler   *httpH.CountHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Parts
		if cfg.PartHandler != nil {
			api.GET("/parts", cfg.PartHandler.ListParts)
			api.POST("/parts", cfg.PartHandler.CreatePart)
		}

		// Complexes
		if cfg.ComplexHandler != nil {
			api.GET("/complexes", cfg.ComplexHandler.ListComplexes)
			api.POST("/complexes", cfg.ComplexHandler.CreateComplex)
			api.GET("/complexes/:id", cfg.ComplexHandler.GetComplex)
			api.POST("/complexes/:id/parts", cfg.ComplexHandler.SetComplexPart)
		}

		// Aggregation
		if cfg.CountHandler != nil {
			api.POST("/count", cfg.CountHandler.CountParts)
		}
	}

	r.NoRoute(frontend(cfg.FrontendDir))
	return r
}

// frontend serves a built single page app from dir. Unknown API paths and a
// missing dir fall through to a JSON 404.
func frontend(dir string) gin.HandlerFunc {
	dir = strings.TrimSpace(dir)
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(p, "/api/") || p == "/api" ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			response.RespondError(c, http.StatusNotFound, "route_not_found", nil)
			return
		}
		target := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+p)))
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			c.File(target)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			response.RespondError(c, http.StatusNotFound, "route_not_found", nil)
			return
		}
		c.File(index)
	}
}
