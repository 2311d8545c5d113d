package main

import (
	"context"
	"fmt"

	"epic-events-crm/audit"
	bleveRepositories "epic-events-crm/bleve/repositories"
	bleveServices "epic-events-crm/bleve/services"
	"epic-events-crm/config"
	"epic-events-crm/metrics"
	"epic-events-crm/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the infrastructure shared by every command.
type app struct {
	cfg         *config.Config
	db          *gorm.DB
	indexer     *bleveServices.IndexingService
	search      bleveRepositories.BleveRepositoryInterface
	redisClient *redis.Client
	audit       audit.Sink
	metrics     *metrics.Metrics
}

func setup(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()

	if err := config.InitLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := utils.InitializeDateLocation(cfg.DBTimezone); err != nil {
		return nil, err
	}

	db, err := config.ConfigureDatabase(cfg)
	if err != nil {
		config.Logger.Error("Database setup failed", zap.Error(err))
		return nil, fmt.Errorf("database setup failed: %w", err)
	}

	a := &app{
		cfg:     cfg,
		db:      db,
		indexer: bleveServices.NewIndexingService(config.Logger, cfg.BleveIndexPath),
		metrics: metrics.New(),
	}
	_, a.search = bleveRepositories.NewBleveRepository(a.indexer)

	sinks := audit.Multi{audit.LoggerSink{}, audit.NewGormSink(db)}
	if cfg.RedisAddress != "" {
		client, err := config.InitRedisServer(ctx, cfg.RedisAddress)
		if err != nil {
			// The audit trail still reaches the log file and the database.
			config.Logger.Warn("Redis unavailable, audit entries are not published", zap.Error(err))
		} else {
			a.redisClient = client
			sinks = append(sinks, audit.NewRedisSink(client))
		}
	}
	a.audit = sinks

	return a, nil
}

func (a *app) close() {
	if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		config.Logger.Warn("Failed to write metrics", zap.Error(err))
	}
	if err := a.indexer.Close(); err != nil {
		config.Logger.Warn("Failed to close search index", zap.Error(err))
	}
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if err := config.CloseDatabase(a.db); err != nil {
		config.Logger.Warn("Failed to close database", zap.Error(err))
	}
	config.Logger.Sync()
}
