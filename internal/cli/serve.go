package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/evadvisor/internal/api"
	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/session"
	"github.com/ppiankov/evadvisor/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the advisor over HTTP",
	Long: `Serve exposes the advisor as a JSON API with in-memory chat sessions.

Routes:
  POST   /api/resolve                  answer one message, no session
  POST   /api/sessions                 start a session {"role": "..."}
  GET    /api/sessions/{id}            session metadata
  DELETE /api/sessions/{id}            end a session
  POST   /api/sessions/{id}/messages   {"message": "...", "role": "..."}
  GET    /api/sessions/{id}/history    ordered turns
  GET    /api/sessions/{id}/export.csv history as CSV
  GET    /health

Sessions live in memory only and expire after session.ttl of inactivity.

Example:
  evadvisor serve
  evadvisor serve --addr :9090 --mode learned`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, p, err := buildPipeline()
	if err != nil {
		return err
	}

	logger := newServerLogger(os.Stdout, cfg.Output)
	slog.SetDefault(logger)
	logger.Info("Advisor ready", "mode", p.Mode())

	store := session.NewStore(cfg.Session)
	limiter := worker.NewLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst)
	handler := api.NewHandler(p, store, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler, limiter),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "session_ttl", cfg.Session.TTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	stop()

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped", "sessions", store.Len())
	return nil
}

// newServerLogger builds the JSON request logger; output.verbose (flag, env
// or config file) enables debug records
func newServerLogger(w io.Writer, cfg model.OutputConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
