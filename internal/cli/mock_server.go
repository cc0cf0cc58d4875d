package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/mockapi"
)

const (
	defaultMockAddr     = "127.0.0.1:3000"
	mockReadTimeout     = 10 * time.Second
	mockShutdownTimeout = 5 * time.Second
)

// NewMockServerCmd creates the hidden command serving the in-memory demo backend.
func NewMockServerCmd() *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:    "mock-server",
		Short:  "Serve an in-memory demo backend",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			srv := mockapi.New(mockapi.DemoFixtures(time.Now()), logger)
			if delay > 0 {
				srv.SetDelay(func(*http.Request) time.Duration { return delay })
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			return serveMock(ctx, cmd, srv, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultMockAddr, "listen address")
	cmd.Flags().DurationVar(&delay, "delay", 0, "artificial latency added to every request")
	return cmd
}

// serveMock runs handler on ln until ctx is cancelled.
func serveMock(ctx context.Context, cmd *cobra.Command, handler http.Handler, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: mockReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	cmd.Printf("Serving mock API at http://%s%s\n", ln.Addr(), mockapi.BasePath)
	logger.Info().Ctx(ctx).Str("addr", ln.Addr().String()).Msg("mock server started")

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving mock API: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mockShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down mock API: %w", err)
	}
	logger.Info().Ctx(ctx).Msg("mock server stopped")
	return nil
}
