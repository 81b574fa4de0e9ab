package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/config"
	"github.com/AnthoniusHendriyanto/access-gate/db"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/handler"
	repo "github.com/AnthoniusHendriyanto/access-gate/internal/auth/repository/postgres"
	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/service"
	"github.com/AnthoniusHendriyanto/access-gate/internal/events"
	"github.com/AnthoniusHendriyanto/access-gate/internal/gate"
	"github.com/AnthoniusHendriyanto/access-gate/internal/logging"
	"github.com/AnthoniusHendriyanto/access-gate/internal/session"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel).With("service", "access-gate", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer dbPool.Close()

	profileRepo := repo.NewPostgresRepository(dbPool)

	var publisher domain.EventPublisher = events.NewLoggingPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer kp.Close()
		publisher = kp
	}

	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessionOpts []handler.SessionsOption
	if cfg.SessionSecret != "" {
		sessionOpts = append(sessionOpts, handler.WithCodec(service.NewTokenService(cfg.SessionSecret, cfg.SessionTTLMin)))
	}
	if cfg.SessionSlot == config.SlotRedis {
		rdb, err := session.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		sessionOpts = append(sessionOpts, handler.WithRedis(rdb, cfg.RedisKeyPrefix))
	}
	sessions := handler.NewSessions(ttl, cfg.CookieSecure, logger, sessionOpts...)

	userService := service.NewUserService(profileRepo, service.NewPasswordHasher(0), logger)
	adminService := service.NewAdminService(profileRepo, publisher, logger)
	accessGate := gate.New(profileRepo, publisher, logger)

	app := fiber.New()
	handler.RegisterRoutes(app,
		handler.NewAuthHandler(userService, sessions),
		handler.NewGateHandler(accessGate, sessions),
		handler.NewAdminHandler(adminService, sessions),
	)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error(context.Background(), "shutdown failed", "err", err)
		}
	}()

	logger.Info(ctx, "listening", "port", cfg.Port, "session_slot", cfg.SessionSlot)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
