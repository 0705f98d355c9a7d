package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evaluator/config"
	"evaluator/internal/events"
	"evaluator/internal/logging"
	"evaluator/internal/repository"
	"evaluator/internal/service"
	"evaluator/internal/storage"
	"evaluator/internal/validation"
	"evaluator/pkg/db"
	"evaluator/pkg/s3client"
)

type slotOpener func(ctx context.Context, cfg *config.Config) (storage.Slot, func() error, error)

type options struct {
	loadConfig func() (*config.Config, error)
	newLogger  func(level string) (*logging.Logger, error)
	openSlot   slotOpener
}

func defaultOptions() options {
	return options{
		loadConfig: config.Load,
		newLogger:  logging.NewDevelopment,
		openSlot:   openSlot,
	}
}

// app holds the dependencies of one CLI invocation. The store is opened
// lazily so commands that never touch submissions skip the back end.
type app struct {
	opts    options
	cfg     *config.Config
	logger  *logging.Logger
	svc     service.SubmissionServiceInterface
	closers []func() error
}

func newApp(opts options) *app {
	return &app{opts: opts, logger: logging.NewNop()}
}

func (a *app) init() error {
	cfg, err := a.opts.loadConfig()
	if err != nil {
		return err
	}
	logger, err := a.opts.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

func (a *app) submissions(ctx context.Context, cmd *cobra.Command) (service.SubmissionServiceInterface, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	slot, closeSlot, err := a.opts.openSlot(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s slot: %w", a.cfg.Slot.Backend, err)
	}
	if closeSlot != nil {
		a.closers = append(a.closers, closeSlot)
	}

	repo := repository.NewSubmissionRepository(slot, a.logger)
	if err := repo.Load(ctx); err != nil {
		return nil, err
	}

	notifiers := []service.Notifier{newConsoleNotifier(cmd.OutOrStdout())}
	if a.cfg.EventsEnabled() {
		sender := events.NewEventSender(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic)
		a.closers = append(a.closers, sender.Close)
		notifiers = append(notifiers, sender)
	}

	a.svc = service.NewSubmissionService(repo, a.logger, notifiers...)
	return a.svc, nil
}

func (a *app) registration() *service.RegistrationService {
	return service.NewRegistrationService(validation.New())
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn(context.Background(), "failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func openSlot(ctx context.Context, cfg *config.Config) (storage.Slot, func() error, error) {
	switch cfg.Slot.Backend {
	case config.BackendMemory:
		return storage.NewMemorySlot(), nil, nil
	case config.BackendFile:
		return storage.NewFileSlot(cfg.Slot.Dir, cfg.Slot.Key), nil, nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		return storage.NewRedisSlot(rdb, cfg.Slot.Key), rdb.Close, nil
	case config.BackendPostgres:
		pool, err := db.New(ctx, db.Config{
			URL:            cfg.Postgres.URL,
			MaxConns:       cfg.Postgres.MaxConn,
			MinConns:       cfg.Postgres.MinConn,
			AutoMigrate:    cfg.Postgres.AutoMigrate,
			MigrationsPath: cfg.Postgres.MigrationsPath,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresSlot(pool, cfg.Slot.Key), func() error {
			pool.Close()
			return nil
		}, nil
	case config.BackendS3:
		client, err := s3client.New(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewS3Slot(client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.Slot.Key), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown slot backend %q", cfg.Slot.Backend)
	}
}
