package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foige/moxalise-api/internal/app"
	"github.com/foige/moxalise-api/internal/notifications"
	"github.com/foige/moxalise-api/internal/sheets"
	"github.com/foige/moxalise-api/internal/transfer"
	"github.com/foige/moxalise-api/internal/transfer/runctx"
)

// job is one schedulable task. The table below is the whole dispatch
// surface; adding a job means adding an entry here.
type job struct {
	name        string
	description string
	run         func(ctx context.Context, settings app.Settings, maxTime time.Duration)
}

var jobTable = []job{
	{
		name:        "transfer_data",
		description: "Transfer intake rows to the normalized sheet",
		run:         runTransferJob,
	},
}

func jobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Run or list scheduled jobs",
	}
	cmd.AddCommand(jobListCmd(), jobRunCmd())
	return cmd
}

func jobListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available jobs",
		Run: func(cmd *cobra.Command, args []string) {
			log.Info().Msg("Available jobs:")
			for _, j := range jobTable {
				log.Info().Msgf("  - %s: %s", j.name, j.description)
			}
		},
	}
}

func jobRunCmd() *cobra.Command {
	var maxTime int

	cmd := &cobra.Command{
		Use:   "run <job>",
		Short: "Run a job by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			for _, j := range jobTable {
				if j.name == name {
					settings := app.LoadSettings()

					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
					defer stop()

					log.Info().Str("job", name).Msg("Running job")
					j.run(ctx, settings, time.Duration(maxTime)*time.Second)
					log.Info().Str("job", name).Msg("Job completed")
					return nil
				}
			}

			log.Error().Str("job", name).Msg("Unknown job")
			return fmt.Errorf("unknown job: %s", name)
		},
	}

	cmd.Flags().IntVar(&maxTime, "max-time", 240,
		"maximum execution time in seconds before graceful shutdown")
	return cmd
}

// runTransferJob executes one transfer pass. Errors are logged and
// swallowed: the job is invoked on a schedule, and the sheet's id cells and
// added flags already written make the next run resume safely.
func runTransferJob(ctx context.Context, settings app.Settings, maxTime time.Duration) {
	client, err := sheets.NewClient(ctx, settings.SpreadsheetID, settings.CredentialsFile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create sheets client")
		return
	}

	cfg := transfer.DefaultConfig()
	if settings.SourceSheet != "" {
		cfg.SourceSheet = settings.SourceSheet
	}
	if settings.TargetSheet != "" {
		cfg.TargetSheet = settings.TargetSheet
	}

	rc := runctx.New(maxTime)
	log.Info().Dur("budget", maxTime).Msg("Starting data transfer process")

	stats, err := transfer.NewEngine(client, cfg).Run(ctx, rc)
	if err != nil {
		log.Error().Err(err).Msg("Error processing spreadsheet data")
	}

	log.Info().
		Dur("elapsed", rc.Elapsed()).
		Int("rows_scanned", stats.RowsScanned).
		Int("rows_transferred", stats.RowsTransferred).
		Msg("Data transfer process completed")

	notifier := notifications.NewClient(settings.NtfyURL, settings.NtfyTopic, settings.NtfyEnabled)
	notifier.NotifyTransferSummary(ctx, stats.RowsScanned, stats.RowsTransferred, rc.Elapsed())
}
