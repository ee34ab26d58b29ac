package app

import (
	"context"
	"log"
	"time"

	"taskmatch/internal/config"
	"taskmatch/internal/database"
	dbpostgres "taskmatch/internal/database/postgres"
	"taskmatch/internal/infrastructure/cache"
	"taskmatch/internal/infrastructure/classifier"
	"taskmatch/internal/notify"
	"taskmatch/internal/pipeline"
	"taskmatch/internal/repository"
	"taskmatch/internal/ws"
)

// Container owns the long-lived pieces of the process: the connection
// pool, the cache, the websocket hub and the CV processing pipeline.
type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Pipeline *pipeline.CVProcessingPipeline
	Mailer   *notify.EmailSender
	Logger   *log.Logger

	cancel context.CancelFunc
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	mailer := notify.NewEmailSender(notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, logger)

	pipe := pipeline.NewCVProcessingPipeline(
		repository.NewPostgresCVRepository(db),
		repository.NewPostgresEmployeeRepository(db),
		repository.NewPostgresSkillRecordRepository(db),
		repository.NewPostgresSkillRepository(db),
		logger,
		pipeline.Config{
			Workers:       cfg.Pipeline.Workers,
			Buffer:        cfg.Pipeline.Buffer,
			MinConfidence: cfg.Pipeline.MinConfidence,
		},
	)
	if clf := classifier.NewClient(cfg.Pipeline.ClassifierURL, logger); clf != nil {
		pipe.SetPredictor(clf)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	pipe.Start(runCtx)

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    cache.NewRedis(logger),
		Hub:      hub,
		Pipeline: pipe,
		Mailer:   mailer,
		Logger:   logger,
		cancel:   runCancel,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Pipeline != nil {
		c.Pipeline.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
