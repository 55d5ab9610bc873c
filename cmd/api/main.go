package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/patients-api/internal/api"
	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/service"
	"github.com/clinicore/patients-api/internal/infrastructure/db/mongo"
	"github.com/clinicore/patients-api/internal/infrastructure/db/redis"
	"github.com/clinicore/patients-api/internal/infrastructure/queue"
	"github.com/clinicore/patients-api/internal/pkg/config"
	"github.com/clinicore/patients-api/pkg/logger"
)

// @title        Patients API
// @version      1.0
// @description  Patient-record management API with JWT authentication and role-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger not up yet
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	authRepo := mongo.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	if err := seedAdmin(ctx, cfg, authRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	// --- Audit pipeline ---
	auditRepo := mongo.NewAuditRepository(db)
	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	throttle := redis.NewLoginThrottle(rdb, redis.ThrottleConfig{
		MaxFailures: cfg.Throttle.MaxFailures,
		Window:      cfg.Throttle.Window,
	})

	e := api.NewRouter(api.Deps{
		Mongo:    db,
		Redis:    rdb,
		Tokens:   tokens,
		Audit:    dispatcher,
		Throttle: throttle,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("patients api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// seedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no account with that email exists.
func seedAdmin(ctx context.Context, cfg *config.Config, repo *mongo.MongoAuthRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	if _, err := repo.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &domain.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		return nil
	}
	return err
}
