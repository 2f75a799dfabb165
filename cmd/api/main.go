package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/config"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/logging"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/media"
	minioRepo "github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/minio"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
	httpx "github.com/njprem/Thomas_Hospital_BackEnd/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logCloser, err := logging.Setup(cfg.LogstashTCPAddr)
	if err != nil {
		log.Fatalf("logstash: %v", err)
	}
	defer logCloser.Close()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer a.Close()
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Println("database: using in-memory tables, data is lost on exit")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	images, err := profileImages(ctx, cfg, a.Users)
	if err != nil {
		log.Fatalf("minio: %v", err)
	}

	e := httpx.NewRouter(httpx.RouterOptions{
		AllowOrigins: cfg.AllowOrigins,
		BodyLimit:    fmt.Sprintf("%dM", cfg.ProfileImageMaxBytes>>20+1),
		Ping:         a.Ping,
	})
	httpx.RegisterSession(e, a.Sessions, a.Admins)
	httpx.RegisterAdmin(e, a.Sessions, a.Admins)
	httpx.RegisterNotifications(e, a.Sessions, a.Notifier)
	httpx.RegisterProfileImages(e, a.Sessions, images)
	httpx.RegisterSwagger(e, httpx.DefaultSwaggerSpec)
	httpx.RegisterMetrics(e, httpx.NewMetrics(prometheus.DefaultRegisterer), prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.Printf("thomas api listening on :%s (driver=%s, accept_expired=%t)", cfg.Port, cfg.DatabaseDriver, cfg.AcceptExpiredTokens)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// profileImages returns nil when MinIO is not configured; the upload route
// then answers 503.
func profileImages(ctx context.Context, cfg config.Config, users ports.TableStore[domain.User]) (*service.ProfileImageService, error) {
	if !cfg.ProfileImagesEnabled() {
		log.Println("minio: not configured, profile image uploads disabled")
		return nil, nil
	}
	client, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		return nil, err
	}
	storage := minioRepo.NewStorage(client, cfg.MinIOEndpoint, cfg.MinIOUseSSL, cfg.MinIOPublicURL)

	ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ensureCtx, cfg.MinIOBucketProfile); err != nil {
		return nil, err
	}

	processor := media.NewScaleProcessor(cfg.ProfileImageMaxDimension)
	return service.NewProfileImageService(users, storage, processor, cfg.MinIOBucketProfile, cfg.ProfileImageMaxBytes, cfg.ProfileImageMaxDimension), nil
}
