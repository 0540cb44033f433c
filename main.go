package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/opencivicmap/civicsync/config"
	"github.com/opencivicmap/civicsync/database"
	"github.com/opencivicmap/civicsync/handlers"
	"github.com/opencivicmap/civicsync/services"
	"github.com/opencivicmap/civicsync/sources"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	syncNow := flag.Bool("sync-now", false, "run one sync pass and exit (requires sync.allow_manual)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Info("Starting civicsync backend...")

	cfg, err := config.Load(resolveConfigPath(*configPath))
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Infof("Configuration loaded. Server port: %s, DB name: %s", cfg.Server.Port, cfg.Database.DBName)

	store, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer store.Close()

	officials := sources.NewCongressClient(cfg.Providers, log)
	counties := sources.NewCensusClient(cfg.Providers, log)
	syncService := services.NewSyncService(store, officials, counties, cfg.Sync.PaceInterval, log)

	if *syncNow {
		// Local/manual trigger. Bypasses the HTTP secret, so it must be
		// explicitly enabled.
		if !cfg.Sync.AllowManual {
			log.Fatal("Manual sync is disabled (set sync.allow_manual to enable locally)")
		}
		report, err := syncService.Run(context.Background())
		if err != nil {
			log.Fatalf("Manual sync run failed: %v", err)
		}
		log.Infof("Manual sync run %s complete: %d/%d states clean",
			report.RunID, report.SuccessfulStates, report.TotalStates)
		return
	}

	syncHandler := handlers.NewSyncHandler(syncService, cfg.Sync.Secret, log)
	civicHandler := handlers.NewCivicHandler(store, log)

	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(); err != nil {
			log.Errorf("Health check failed: DB ping error: %v", err)
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "civicsync backend is healthy"}`)
	})

	http.HandleFunc("/api/admin/sync", syncHandler.TriggerSync)
	http.HandleFunc("/api/officials", civicHandler.GetOfficials)
	http.HandleFunc("/api/counties", civicHandler.GetCounties)

	serverAddr := ":" + cfg.Server.Port
	log.Infof("Server starting on http://localhost%s", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

// resolveConfigPath falls back through the common run locations when no
// -config flag is given.
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	for _, p := range []string{"config/config.yaml", "config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "config/config.yaml"
}
