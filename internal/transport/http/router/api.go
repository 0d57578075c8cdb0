package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/core/config"
	"go-gin-portfolio/internal/core/ratelimit"
	"go-gin-portfolio/internal/core/server"
	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/ez"
	"go-gin-portfolio/internal/transport/http/handler"
	mdw "go-gin-portfolio/internal/transport/http/middleware"
	resp "go-gin-portfolio/internal/transport/http/response"
	"go-gin-portfolio/pkg/validation"
)

type Deps struct {
	Log    *zap.Logger
	Config *config.Config
	// Metrics is both the registry the collectors go to and the one /metrics serves.
	Metrics *prometheus.Registry

	JWT       *auth.JWTer
	Auth      *service.AuthService
	Portfolio *service.PortfolioService
	Contacts  *service.ContactService
	Uploads   *service.UploadService
	// PublicLimiter throttles login, register and contact per client IP. Nil disables it.
	PublicLimiter ratelimit.Limiter
}

func NewAPIEngine(d Deps) *gin.Engine {
	validation.Init()
	cfg := d.Config
	h := cfg.App.HTTP

	r := server.NewRouter(server.Options{
		Name:        cfg.App.Name,
		Mode:        ginMode(cfg.App),
		CORSOrigins: cfg.CORS.Origins,
	})

	reg := d.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(d.Log),
		mdw.Recovery(d.Log),
		mdw.NewMetrics(reg).Handler(),
		mdw.RateLimit(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		mdw.ConcurrencyLimit(h.MaxInFlight),
		mdw.MaxBodyBytes(h.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok", "time": time.Now().UTC()}))
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{"status": "ok", "service": cfg.App.Name, "env": cfg.App.Env}))
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	if u := cfg.Upload; u.Driver == "local" && u.URLPrefix != "" {
		r.Static(u.URLPrefix, u.Dir)
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "Route not found"))
	})

	api := r.Group("/api")
	user := api.Group("", mdw.Authenticate(d.JWT, d.Auth))
	admin := api.Group("", mdw.Authenticate(d.JWT, d.Auth), mdw.RequireRole(string(domain.RoleAdmin)))

	routes := ez.Routes{
		Public: ez.New(api, d.Log),
		User:   ez.New(user, d.Log),
		Admin:  ez.New(admin, d.Log),
	}
	if d.PublicLimiter != nil {
		routes.Throttle = mdw.Throttle(d.PublicLimiter, "public", d.Log)
	}

	var modules Registry
	modules.Register(
		handler.NewAuthHandler(d.Auth),
		handler.NewPortfolioHandler(d.Portfolio),
		handler.NewContactHandler(d.Contacts),
		handler.NewUploadHandler(d.Uploads),
	)
	modules.MountAll(routes)
	return r
}

func ginMode(a config.App) string {
	switch strings.ToLower(a.Env) {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}
