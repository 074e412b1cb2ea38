package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	validations "github.com/reoring/validations"
	"github.com/reoring/validations/internal/logger"
	"github.com/reoring/validations/middleware"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /validate for a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, nil)
		},
	}
	cmd.Flags().String("schema", "", "schema document (YAML)")
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Int64("max-body-bytes", 0, "request body limit in bytes")
	return cmd
}

// serve runs until ctx is done. ready, if non-nil, receives the bound
// address once the listener is open.
func (a *app) serve(ctx context.Context, ready chan<- string) error {
	s, err := a.loadSchema()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return err
	}
	log := a.log.With(logger.Schema(a.cfg.Schema))
	srv := &http.Server{
		Handler:           newRouter(s, log, a.cfg.MaxBodyBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Info("listening", slog.String("addr", ln.Addr().String()))
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}

func newRouter(s *validations.Schema, log *slog.Logger, maxBody int64) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.Recoverer)

	reqLog := slog.New(logger.NewLogHandlerDecorator(log.Handler(), func(ctx context.Context) (slog.Attr, bool) {
		id := chimw.GetReqID(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodPost, "/validate", middleware.Handler(s,
		middleware.WithLogger(reqLog),
		middleware.WithDecoder(middleware.JSONBody(maxBody)),
	))
	return r
}
