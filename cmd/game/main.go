package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tatianab/scout-career/internal/chronicle"
	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/logging"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/store"
	"github.com/tatianab/scout-career/internal/telemetry"
	"github.com/tatianab/scout-career/internal/tui"
)

func main() {
	ctx := context.Background()

	newCareer := flag.Bool("new", false, "start a new career even if the slot has a save")
	seed := flag.String("seed", "", "world seed for a new career (defaults to the scout's name)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	models.SaveDir = cfg.SaveDir

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	log := logger.Slog()

	shutdown, err := telemetry.Setup(ctx, "scout-career", cfg.OTelEndpoint)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		fmt.Printf("Error loading tuning: %v\n", err)
		os.Exit(1)
	}

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening save database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	eng := engine.New(tuning,
		engine.WithLogger(log),
		engine.WithSaver(store.Savers{db.Slot(cfg.Slot), store.FileSaver{Name: cfg.Slot}}),
	)

	opts := tui.Options{Seed: *seed, WeekLog: store.NewWeekLog(cfg.WeekLogDir)}
	defer opts.WeekLog.Close()
	if !*newCareer {
		g, err := db.LoadSlot(ctx, cfg.Slot)
		switch {
		case err == nil:
			opts.State = &g
		case errors.Is(err, store.ErrNoSlot):
		default:
			log.Error("failed to load save", "slot", cfg.Slot, "err", err)
		}
	}
	if cfg.GeminiAPIKey != "" {
		c, err := chronicle.New(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			log.Warn("chronicle disabled", "err", err)
		} else {
			defer c.Close()
			opts.Chronicle = c
		}
	}

	final, err := tui.Run(eng, opts)
	eng.WaitForAutosave()
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
	if final.WorldSeed != "" {
		if err := db.SaveSlot(ctx, cfg.Slot, final); err != nil {
			fmt.Printf("Error saving career: %v\n", err)
			os.Exit(1)
		}
	}
}
