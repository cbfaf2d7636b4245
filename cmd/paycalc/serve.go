package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elriot/part-time-pay-calculator/api"
	"github.com/elriot/part-time-pay-calculator/autosave"
	"github.com/elriot/part-time-pay-calculator/config"
	"github.com/elriot/part-time-pay-calculator/session"
	"github.com/elriot/part-time-pay-calculator/state"
	"github.com/elriot/part-time-pay-calculator/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. The snapshot is revived from SQLite on startup,
autosaved after edits, and flushed on SIGINT/SIGTERM.

Use --db=":memory:" for a throwaway session.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	cfg := config.Load()
	serveCmd.Flags().Int("port", cfg.Server.Port, "HTTP server port")
	serveCmd.Flags().String("db", cfg.Storage.DBPath, "SQLite database path")
	serveCmd.Flags().String("key", cfg.Storage.SnapshotKey, "Snapshot key in the store")
	serveCmd.Flags().Duration("autosave-delay", cfg.Storage.AutosaveDelay, "Quiet period before an autosave")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	flags := cmd.Flags()
	port, _ := flags.GetInt("port")
	dbPath, _ := flags.GetString("db")
	key, _ := flags.GetString("key")
	delay, _ := flags.GetDuration("autosave-delay")
	debug, _ := flags.GetBool("debug")

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	saver := autosave.New(store, key, delay, logger)
	sess, err := session.Open(cmd.Context(), store, saver, state.NewReducer(), key, logger)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if at, err := store.UpdatedAt(cmd.Context(), key); err == nil {
		logger.Info("last autosave", "key", key, "at", at)
	}

	handler := api.NewHandler(sess, logger)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d/api", port), "db", dbPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := sess.Close(ctx); err != nil {
		logger.Error("final autosave failed", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
