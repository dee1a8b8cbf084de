package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"figment/internal/api"
	"figment/internal/auth"
	"figment/internal/catalog"
	"figment/internal/chat"
	"figment/internal/config"
	"figment/internal/logging"
	"figment/internal/session"
	"figment/internal/store"
	"figment/internal/theme"
	"figment/internal/watcher"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	level := logging.ParseLevel(cfg.Logging.Level)
	var output io.Writer = os.Stdout
	var fileWriter *logging.FileWriter
	if cfg.Logging.DebugEnabled && cfg.Logging.File != "" {
		fileWriter, err = logging.NewFileWriter(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
		if err != nil {
			log.Printf("Failed to open log file, logging to stdout only: %v", err)
		} else {
			output = logging.NewMultiWriter(os.Stdout, fileWriter)
			defer fileWriter.Close()
		}
	}
	logger := logging.NewLogger("main", level, output)
	logger.Info("Starting Figment v%s...", version)

	// Initialize store with migrations
	st, err := store.NewDataStore("sqlite", cfg.Database)
	if err != nil {
		logger.Error("Failed to initialize store: %v", err)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("Database initialized")

	// Initialize auth provider
	provider, err := auth.NewProvider(auth.Config{
		Type:            cfg.Auth.Provider,
		TokenExpiryDays: cfg.Auth.TokenExpiryDays,
	}, st)
	if err != nil {
		logger.Error("Failed to initialize auth provider: %v", err)
		os.Exit(1)
	}
	logger.Info("Auth provider: %s", provider.Name())

	// Load character catalog
	directory, err := catalog.Load(cfg.Characters)
	if err != nil {
		logger.Error("Failed to load character catalog: %v", err)
		os.Exit(1)
	}
	logger.Info("Character catalog loaded: %d characters", directory.Len())

	// Load theme palettes
	themes, err := theme.Load(cfg.Theme.File)
	if err != nil {
		logger.Error("Failed to load theme palettes: %v", err)
		os.Exit(1)
	}

	// Initialize chat engine
	engine := chat.NewEngine(directory, chat.Options{
		ReplyDelayMin: time.Duration(cfg.Chat.ReplyDelayMinMS) * time.Millisecond,
		ReplyDelayMax: time.Duration(cfg.Chat.ReplyDelayMaxMS) * time.Millisecond,
		Logger:        logging.NewLogger("chat", level, output),
	})

	// Initialize session manager and restore persisted state
	defaultTheme, _ := theme.ParseMode(cfg.Theme.Default)
	sessions := session.NewManager(st, provider, session.Options{
		DefaultTheme: defaultTheme,
		Logger:       logging.NewLogger("session", level, output),
	})
	defer sessions.Dispose()
	sessions.Initialize(context.Background())
	logger.Info("Session restored: identity=%s theme=%s", sessions.Identity().Kind, sessions.Theme())

	// Initialize API server
	apiServer := api.NewServer(sessions, engine, directory, themes, api.ServerConfig{
		HistoryLimit: cfg.Chat.HistoryLimit,
	}, logging.NewLogger("api", level, output))
	defer apiServer.Close()
	logger.Info("API server initialized")

	// Watch static data files; edits require a restart to apply
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := watcher.NewWatcher([]string{cfg.Characters, cfg.Theme.File, "config.json"}, nil,
		logging.NewLogger("watcher", level, output))
	if err != nil {
		logger.Warn("File watcher unavailable: %v", err)
	} else {
		w.Start(ctx)
	}

	// Register routes
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server listening on http://%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
		}
	}()

	// Graceful shutdown handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
	logger.Info("Figment stopped")
}
