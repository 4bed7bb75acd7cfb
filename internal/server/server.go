package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/i18n"
	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	log        *zap.Logger
	translator *i18n.Translator
	clientSvc  clientdomain.Service
	portalSvc  portaldomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Log        *zap.Logger
	Translator *i18n.Translator
	ClientSvc  clientdomain.Service
	PortalSvc  portaldomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		log:        p.Log.Named("http.server"),
		translator: p.Translator,
		clientSvc:  p.ClientSvc,
		portalSvc:  p.PortalSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterPortalRoutes()
}

// RegisterPortalRoutes mounts the client portal surface behind contact auth.
func (s *Server) RegisterPortalRoutes() {
	portal := s.engine.Group("/portal", s.ContactAuth())
	portal.GET("/invoices", s.ListInvoices)
	portal.PUT("/invoices/selection", s.SetSelection)
	portal.POST("/invoices/selection/all", s.ToggleSelectAll)
	portal.POST("/invoices/download", s.StartDownload)
	portal.GET("/invoices/download", s.Download)
	portal.POST("/invoices/payment", s.StartPayment)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
