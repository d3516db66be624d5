package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"PriceSentinel/internal/api"
	"PriceSentinel/internal/config"
	"PriceSentinel/internal/notifier"
	"PriceSentinel/internal/pipeline"
	"PriceSentinel/internal/recorder"
	"PriceSentinel/internal/report"
	"PriceSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PriceSentinel starting...")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	var history api.History
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			history = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runner := pipeline.NewRunner(engine, rec, pipeline.Paths{
		OverviewCSV: cfg.Paths.OverviewCSV,
		MappingCSV:  cfg.Paths.MappingCSV,
		DataDir:     cfg.Paths.DataDir,
		OutputCSV:   cfg.Paths.OutputCSV,
		StateFile:   cfg.Paths.StateFile,
	})

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Schedule.Cron == "" && cfg.Server.Addr == "" {
		if err := runOnce(ctx, runner); err != nil {
			log.Printf("[ERROR] pricing run: %v", err)
			rec.Close()
			os.Exit(1)
		}
		return
	}
	runDaemon(ctx, cfg, runner, history)
}

func runOnce(ctx context.Context, runner *pipeline.Runner) error {
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, line := range report.SummaryLines(summary) {
		fmt.Println(line)
	}
	return nil
}

func runDaemon(ctx context.Context, cfg *config.Config, runner *pipeline.Runner, history api.History) {
	// Init notifier
	var n notifier.Notifier = notifier.NewNoopNotifier()
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runner, n)
	if cfg.Schedule.Cron != "" {
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			log.Fatalf("[FATAL] register cron task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Start API server
	var srv *http.Server
	if cfg.Server.Addr != "" {
		srv = &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           api.NewRouter(runner, history),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Printf("[INFO] API listening on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] API server: %v", err)
			}
		}()
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pricing run now")
		go sched.RunNow()
	}

	log.Println("[INFO] PriceSentinel is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] API shutdown: %v", err)
		}
	}
	log.Println("[INFO] PriceSentinel stopped")
}
