package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/api/handlers/run"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/api/router"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/api/server"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/cache"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/channel"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/config"
	childrepo "github.com/adr1ang1lbert/birth-vaccine-system/internal/repository/child"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/scheduler"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/service/reminder"
	"github.com/adr1ang1lbert/birth-vaccine-system/pkg/email"
	"github.com/adr1ang1lbert/birth-vaccine-system/pkg/sms"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()

	val := validator.New()
	if err := val.Struct(cfg); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("invalid configuration")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	repo := childrepo.NewRepository(db)

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	marker := cache.NewSentMarker(rdb, cfg.Retry)

	// Channels without credentials stay wired but unconfigured; attempts
	// on them are skipped without a network call.
	var smsClient *sms.Client
	if cfg.SMS.Configured() {
		smsClient = sms.NewClient(cfg.SMS.Username, cfg.SMS.APIKey, cfg.SMS.BaseURL, cfg.SMS.SenderID)
	} else {
		zlog.Logger.Warn().Msg("sms gateway credentials missing, sms channel disabled")
	}

	var emailClient *email.Client
	if cfg.Email.Configured() {
		emailClient = email.NewClient(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.Email.Timeout,
		)
	} else {
		zlog.Logger.Warn().Msg("smtp credentials missing, email channel disabled")
	}

	adapters := []channel.Adapter{
		channel.NewSMS(smsClient, cfg.SMS.Timeout),
		channel.NewEmail(emailClient),
	}

	dispatcher := reminder.NewDispatcher(adapters, marker)
	service := reminder.NewService(repo, dispatcher, cfg.Workers.Count)

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("failed to load timezone")
	}

	sched := scheduler.New(service, cfg.Scheduler.CronSpec, loc)
	if err := sched.Start(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to start scheduler")
	}

	handler := run.NewHandler(service, loc, adapters)
	r := router.New(handler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	// Let an in-flight run finish its channel attempts before exiting.
	sched.Stop()

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msgf("failed to close slave DB %d", i)
		}
	}

	zlog.Logger.Info().Msg("reminder service stopped")
}
