package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lotomania/internal/assistant"
)

var watchSchedule string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically refresh the latest result into the cache and history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		c := cron.New()
		if _, err := c.AddFunc(watchSchedule, func() { refresh(ctx, a.assistant) }); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", watchSchedule, err)
		}

		refresh(ctx, a.assistant)
		c.Start()
		log.Info().Str("schedule", watchSchedule).Msg("Watching for new results")

		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	},
}

func refresh(ctx context.Context, a *assistant.Assistant) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if _, err := a.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Refresh failed")
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "@every 1h", "cron schedule of the refresh")
	rootCmd.AddCommand(watchCmd)
}
