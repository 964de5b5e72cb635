package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/config"
	"keywordmatrix/internal/jobs"
	"keywordmatrix/internal/metrics"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/runner"
	"keywordmatrix/internal/server"
	"keywordmatrix/internal/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Load the rule registry
	rulesCfg, err := config.LoadRulesFile(cfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load rules file %s: %v", cfg.RulesFile, err)
	}
	registry, err := classifier.NewRegistry(rulesCfg)
	if err != nil {
		log.Fatalf("Invalid rules file %s: %v", cfg.RulesFile, err)
	}
	if n := rulesCfg.RuleCount(); n > 0 {
		log.Printf("Loaded %d rules from %s", n, cfg.RulesFile)
	} else {
		log.Println("Using built-in classification rules")
	}

	// Initialize the run store
	var runs store.Store
	if cfg.RedisURL != "" {
		runs = store.NewRedisStore(cfg.RedisURL, cfg.RunTTL)
		log.Println("Storing runs in Redis")
	} else {
		memory := store.NewMemoryStore(cfg.RunTTL)
		go jobs.NewRunSweeper(memory, time.Minute).Start(ctx)
		runs = memory
		log.Println("Storing runs in memory")
	}
	defer runs.Close()

	metrics.Init()
	r := runner.New(registry, runs)

	seedSample(ctx, r, cfg.SampleDataPath)

	srv := server.New(cfg, "./views")
	if err := srv.RegisterRoutes(ctx, r, runs); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// seedSample classifies the bundled sample spreadsheet so the dashboard has
// something to show before the first upload.
func seedSample(ctx context.Context, r *runner.Runner, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to open sample data: %v", err)
		}
		return
	}
	defer f.Close()

	run, err := r.FromFiles(ctx, models.SourceSample, []runner.File{{Name: filepath.Base(path), Body: f}})
	if err != nil {
		log.Printf("Warning: failed to classify sample data: %v", err)
		return
	}
	log.Printf("Classified %d sample keywords (run %s)", len(run.Records), run.ID)
}
