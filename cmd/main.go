package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/accountd/accountd/config"
	"github.com/accountd/accountd/internal/application"
	"github.com/accountd/accountd/internal/infrastructure"
	"github.com/accountd/accountd/internal/infrastructure/filestore"
	handlers "github.com/accountd/accountd/internal/interface/http"
	"github.com/accountd/accountd/internal/interface/middleware"
	"github.com/accountd/accountd/internal/router"
	"github.com/accountd/accountd/internal/router/modules"
	"github.com/accountd/accountd/pkg/helpers"
	"github.com/accountd/accountd/pkg/mailer"
	"github.com/accountd/accountd/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Storage backend, chosen once here
	repo, closeRepo, err := infrastructure.NewUserRepository(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init user repository: %v", err)
	}
	defer closeRepo()

	// Redis (public user-list cache)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// Capabilities
	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := helpers.BcryptHasher{}

	var mail application.EmailSender
	var rabbit *helpers.RabbitPublisher
	if cfg.EmailDelivery == "queue" {
		rabbit, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbit.Close()
		mail = mailer.NewQueuedSender(rabbit)
	} else {
		mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey)
	}

	var files application.FileStore
	if cfg.FileStore == "gcs" {
		gcs, err := filestore.NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS file store: %v", err)
		}
		defer func() { _ = gcs.Close() }()
		files = gcs
	} else {
		local, err := filestore.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to init local file store: %v", err)
		}
		files = local
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Locally stored profile images are served as static files
	if cfg.FileStore == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	handler := handlers.NewUserHandler(repo, hasher, jwtManager, mail, files, rdb, logger, cfg)
	reg := router.NewRegistry(r)
	reg.Add(modules.NewUserModule(handler, jwtManager))
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
