package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lotomania/internal/api"
)

var httpAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the REST API and Prometheus metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := &http.Server{
			Addr:              httpAddr,
			Handler:           api.NewRouter(a.assistant),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", httpAddr).Msg("HTTP API listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("Shutting down HTTP API")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	httpCmd.Flags().StringVar(&httpAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(httpCmd)
}
