package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmatch/internal/config"
	"taskmatch/internal/database/migration"
	dbpostgres "taskmatch/internal/database/postgres"
	"taskmatch/internal/database/seeder"
	"taskmatch/internal/infrastructure/classifier"
	"taskmatch/internal/pipeline"
	"taskmatch/internal/repository"

	"github.com/joho/godotenv"
)

// Standalone CV processing worker. Runs migrations, optionally seeds,
// then drains PROCESSING documents either once or on an interval.
func main() {
	limit := flag.Int("limit", 50, "max documents per batch")
	interval := flag.Duration("interval", 0, "poll interval; 0 runs a single batch")
	seed := flag.Bool("seed", false, "run default seeders before processing")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	connCtx, connCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	connCancel()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations", Logger: log.Default()}
	if err := r.Run(migCtx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if *seed {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		runner := seeder.Runner{Seeders: seeder.Defaults()}
		err := runner.Run(seedCtx, db)
		seedCancel()
		if err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	pipe := pipeline.NewCVProcessingPipeline(
		repository.NewPostgresCVRepository(db),
		repository.NewPostgresEmployeeRepository(db),
		repository.NewPostgresSkillRecordRepository(db),
		repository.NewPostgresSkillRepository(db),
		log.Default(),
		pipeline.Config{
			Workers:       cfg.Pipeline.Workers,
			Buffer:        cfg.Pipeline.Buffer,
			MinConfidence: cfg.Pipeline.MinConfidence,
		},
	)
	if clf := classifier.NewClient(cfg.Pipeline.ClassifierURL, log.Default()); clf != nil {
		pipe.SetPredictor(clf)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if *interval <= 0 {
		if err := pipe.RunPending(ctx, *limit); err != nil {
			log.Fatalf("run failed: %v", err)
		}
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		if err := pipe.RunPending(ctx, *limit); err != nil {
			log.Printf("batch error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
