package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/core/config"
	"go-gin-portfolio/internal/core/database"
	"go-gin-portfolio/internal/core/logger"
	"go-gin-portfolio/internal/core/mail"
	"go-gin-portfolio/internal/core/ratelimit"
	"go-gin-portfolio/internal/core/server"
	"go-gin-portfolio/internal/core/storage"
	"go-gin-portfolio/internal/repo"
	"go-gin-portfolio/internal/service"
	"go-gin-portfolio/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	f := cfg.Log.File
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, f.Filename, f.MaxSizeMB, f.MaxBackups, f.MaxAgeDays, f.Compress)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	for _, w := range cfg.Warnings() {
		log.Warn("config: " + w)
	}

	db := mustOpenDB(cfg, log)
	log.Info("database connected",
		zap.String("driver", cfg.DB.Driver),
		zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))
	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	}
	authSvc := service.NewAuthService(repo.NewUserRepo(db), jwter, log, service.AuthOptions{
		BcryptCost:        cfg.Auth.BcryptCost,
		AllowRegistration: cfg.Auth.AllowRegistration,
	})
	portfolioSvc := service.NewPortfolioService(repo.NewPortfolioRepo(db), log)

	mailer := mustMailer(cfg, log)
	to := cfg.Mail.To
	if to == "" {
		to = cfg.Mail.From
	}
	notifier := service.NewMailNotifier(mailer, to, log, reg)
	contactSvc := service.NewContactService(repo.NewContactRepo(db), notifier, log)

	uploadSvc := service.NewUploadService(mustStore(cfg, log), cfg.Upload.MaxFileMB<<20)

	r := router.NewAPIEngine(router.Deps{
		Log:           log,
		Config:        cfg,
		Metrics:       reg,
		JWT:           jwter,
		Auth:          authSvc,
		Portfolio:     portfolioSvc,
		Contacts:      contactSvc,
		Uploads:       uploadSvc,
		PublicLimiter: publicLimiter(cfg, log),
	})

	h := cfg.App.HTTP
	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log.Info("portfolio api starting",
		zap.String("env", cfg.App.Env),
		zap.String("mail", mailer.Name()),
		zap.String("upload", cfg.Upload.Driver))
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
	log.Info("portfolio api stopped")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

func mustMailer(cfg *config.Config, l *zap.Logger) mail.Mailer {
	provider := cfg.Mail.Provider
	if !cfg.MailConfigured() {
		provider = "none"
	}
	m, err := mail.New(mail.Config{
		Provider:       provider,
		Host:           cfg.Mail.Host,
		Port:           cfg.Mail.Port,
		Username:       cfg.Mail.Username,
		Password:       cfg.Mail.Password,
		From:           cfg.Mail.From,
		MailgunDomain:  cfg.Mail.MailgunDomain,
		MailgunAPIKey:  cfg.Mail.MailgunAPIKey,
		MailgunBaseURL: cfg.Mail.MailgunBaseURL,
		Timeout:        cfg.Mail.Timeout,
	})
	if err != nil {
		l.Fatal("mail transport", zap.Error(err))
	}
	return m
}

func mustStore(cfg *config.Config, l *zap.Logger) storage.Store {
	u := cfg.Upload
	switch u.Driver {
	case "cloudinary":
		c := u.Cloudinary
		s, err := storage.NewCloudinary(c.CloudName, c.APIKey, c.APISecret, c.Folder)
		if err != nil {
			l.Fatal("cloudinary storage", zap.Error(err))
		}
		return s
	default:
		s, err := storage.NewLocal(u.Dir, u.URLPrefix)
		if err != nil {
			l.Fatal("local storage", zap.Error(err), zap.String("dir", u.Dir))
		}
		return s
	}
}

// publicLimiter shares counters through Redis when configured, otherwise per process.
func publicLimiter(cfg *config.Config, l *zap.Logger) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.PublicMax <= 0 {
		return nil
	}
	if cfg.Redis.Addr == "" {
		return ratelimit.NewWindow(rl.PublicMax, rl.PublicWindow)
	}
	rdb := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		l.Warn("redis unreachable; rate limiting fails open until it recovers", zap.Error(err))
	}
	return ratelimit.NewRedis(rdb, rl.PublicMax, rl.PublicWindow)
}
