package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/botenders/govsimplify/internal/agency"
	"github.com/botenders/govsimplify/internal/logger"
	"github.com/botenders/govsimplify/internal/mockbackend"
)

var (
	mockAddr  string
	mockDelay time.Duration
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 5 * time.Second

var mockCmd = &cobra.Command{
	Use:   "mock-backend",
	Short: "Serve a canned chat and news backend for local development",
	Long: `Starts an HTTP server implementing the message and news endpoints with
canned answers. Point the client at it with --api-url.

Messages containing "pdf" or "summary" get attachments, "fail" returns an
error, and "slow" delays the reply by --delay.`,
	Args: cobra.NoArgs,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().StringVar(&mockAddr, "addr", ":8080", "Address to listen on")
	mockCmd.Flags().DurationVar(&mockDelay, "delay", mockbackend.DefaultSlowDelay, "How long \"slow\" messages wait")
	rootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	if mockDelay < 0 {
		return fmt.Errorf("--delay must not be negative")
	}
	cat, err := agency.Default()
	if err != nil {
		return fmt.Errorf("error loading agencies: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              mockAddr,
		Handler:           mockbackend.New(cat, mockbackend.WithSlowDelay(mockDelay)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, cmd.OutOrStdout())
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, out io.Writer) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(out, "Mock backend listening on %s (Ctrl+C to stop)\n", srv.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock backend: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down mock backend: %w", err)
	}
	return nil
}
