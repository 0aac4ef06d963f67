package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/color-palette/api/api"
	"github.com/color-palette/api/config"
	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/migrations"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/scheduler"
	"github.com/color-palette/api/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := &api.Application{Config: cfg}

	if cfg.DatabaseType == "memory" {
		log.Println("Using in-memory storage; data is lost on restart")
		app.UserRepo = datastore.NewMemoryUserStore()
		app.PaletteRepo = datastore.NewMemoryPaletteStore()
		app.HistoryRepo = datastore.NewMemoryHistoryStore()
	} else {
		connStr := datastore.BuildDBConnStr(
			cfg.DatabasePassword,
			cfg.DatabaseUser,
			cfg.DatabaseHost,
			cfg.DatabaseName,
			cfg.SSLMode,
		)

		dbConn, dbErr := datastore.NewDB(cfg.DatabaseType, connStr)
		if dbErr != nil {
			log.Fatalf("Failed to connect to database: %v", dbErr)
		}
		defer dbConn.Close()

		log.Println("Running database migrations...")
		if err := migrations.RunMigrations(dbConn); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		userRepo, err := datastore.NewUserDatabase(dbConn)
		if err != nil {
			log.Fatalf("Failed to create user repository: %v", err)
		}
		paletteRepo, err := datastore.NewPaletteDatabase(dbConn)
		if err != nil {
			log.Fatalf("Failed to create palette repository: %v", err)
		}
		historyRepo, err := datastore.NewHistoryDatabase(dbConn)
		if err != nil {
			log.Fatalf("Failed to create history repository: %v", err)
		}
		app.UserRepo = userRepo
		app.PaletteRepo = paletteRepo
		app.HistoryRepo = historyRepo
	}

	app.Names = naming.Default()
	if cfg.NamesCorpusPath != "" {
		names, err := loadNames(cfg.NamesCorpusPath)
		if err != nil {
			log.Fatalf("Failed to load color names: %v", err)
		}
		app.Names = names
	}
	log.Printf("Loaded %d color names (%d CSS)", app.Names.Len(), app.Names.CSSLen())

	ctx := context.Background()
	app.Metrics = telemetry.New(ctx, telemetry.Config{
		Endpoint: cfg.OtelEndpoint,
		Enabled:  cfg.OtelEnabled,
		Insecure: cfg.OtelInsecure,
	})
	defer func() {
		if err := app.Metrics.Close(ctx); err != nil {
			log.Printf("Failed to flush metrics: %v", err)
		}
	}()

	sweeper := scheduler.NewSweeper(app.HistoryRepo, app.Metrics, cfg.HistorySweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	mux := http.NewServeMux()

	log.Println("Color Palette API Starting...")
	if err := app.Serve(ctx, mux); err != nil {
		log.Printf("Server error: %v", err)
		return
	}
}

func loadNames(path string) (*naming.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return naming.Load(f)
}
