package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"profilehub/docs" // swagger docs
	"profilehub/internal/auth"
	"profilehub/internal/cache"
	"profilehub/internal/config"
	"profilehub/internal/db"
	"profilehub/internal/handler"
	"profilehub/internal/logging"
	"profilehub/internal/router"
	"profilehub/internal/service"
	"profilehub/internal/storage"
)

// @title Profile Hub API
// @version 1.0
// @description User signup, login and JWT-protected profile dashboard.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, closeUsers, err := db.OpenUserRepository(ctx, cfg)
	if err != nil {
		logger.Fatalf("setup user store: %v", err)
	}
	defer closeUsers()
	logger.Infof("using %s user store", cfg.DatabaseDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warnf("redis unavailable, profile cache will miss: %v", err)
		}
		defer cacheClient.Close()
	}

	store, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup media storage: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// Initialize services
	mediaService := service.NewMediaService(store, cfg.MediaMaxBytes)
	authService := service.NewAuthService(users, hasher, jwtService, mediaService)
	userService := service.NewUserService(users, cacheClient)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, router.Handlers{
		Auth:  handler.NewAuthHandler(authService, logger),
		User:  handler.NewUserHandler(userService, logger),
		Media: handler.NewMediaHandler(mediaService, logger),
		Guard: auth.Guard(jwtService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	logger.Infof("swagger documentation available at http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (storage.Store, error) {
	if cfg.MediaBackend != "s3" {
		store, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		logger.Infof("storing uploads in %s", store.Dir())
		return store, nil
	}

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3Region),
	}
	if cfg.AWSProfile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWSProfile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.S3Bucket, cfg.S3Region)
	return storage.NewS3Service(client, cfg.S3Bucket, cfg.S3Prefix)
}
