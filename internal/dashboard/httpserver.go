package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// httpServer matches *http.Server's lifecycle methods, letting
// serverService run against a fake in tests.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// serverService adapts http.Server's blocking ListenAndServe to a
// context-driven Run(ctx) error, the shape every other WaveAlert360
// process loop shares.
type serverService struct {
	server          httpServer
	shutdownTimeout time.Duration
}

func newServerService(server httpServer, shutdownTimeout time.Duration) *serverService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &serverService{server: server, shutdownTimeout: shutdownTimeout}
}

func (s *serverService) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dashboard http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("dashboard http server shutdown: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}
