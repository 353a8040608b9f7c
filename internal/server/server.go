package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/config"
	configuratordomain "github.com/scaroll/pgclosets-core/internal/configurator/domain"
	freightdomain "github.com/scaroll/pgclosets-core/internal/freight/domain"
	"github.com/scaroll/pgclosets-core/internal/observability"
	quotedomain "github.com/scaroll/pgclosets-core/internal/quote/domain"
	"github.com/scaroll/pgclosets-core/internal/ratelimit"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.GinLogger())
	r.Use(observability.GinTracing())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.AppVersion})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

type ServerParams struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.Logger
	Cfg          config.Config
	Catalog      catalogdomain.Service
	Configurator configuratordomain.Service
	Freight      freightdomain.Service
	Quotes       quotedomain.Service
	Limiter      *ratelimit.ConfigureLimiter `optional:"true"`
}

type Server struct {
	engine          *gin.Engine
	log             *zap.Logger
	cfg             config.Config
	catalogSvc      catalogdomain.Service
	configuratorSvc configuratordomain.Service
	freightSvc      freightdomain.Service
	quoteSvc        quotedomain.Service
	limiter         *ratelimit.ConfigureLimiter
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Engine,
		log:             p.Log.Named("http.server"),
		cfg:             p.Cfg,
		catalogSvc:      p.Catalog,
		configuratorSvc: p.Configurator,
		freightSvc:      p.Freight,
		quoteSvc:        p.Quotes,
		limiter:         p.Limiter,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.POST("/configure", s.rateLimitMiddleware(s.limiter), s.Configure)

	catalog := api.Group("/catalog")
	catalog.GET("/series", s.ListSeries)
	catalog.GET("/series/:id", s.GetSeries)
	catalog.GET("/search", s.SearchSeries)
	catalog.GET("/stats", s.CatalogStats)
	catalog.GET("/sku/:sku", s.ResolveSKU)

	freight := api.Group("/freight")
	freight.GET("/zone", s.ResolveZone)
	freight.POST("/estimate", s.EstimateFreight)
	freight.GET("/delivery-promise", s.DeliveryPromise)
	freight.GET("/pickup-locations", s.PickupLocations)

	api.POST("/quotes", s.rateLimitMiddleware(s.limiter), s.CreateQuote)
	api.GET("/quotes", s.ListQuotes)
	api.GET("/quotes/:reference", s.GetQuote)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.ListenAddr))
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
