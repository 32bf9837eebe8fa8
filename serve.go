package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foige/moxalise-api/internal/app"
	"github.com/foige/moxalise-api/internal/server"
	"github.com/foige/moxalise-api/internal/sheets"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.LoadSettings()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			client, err := sheets.NewClient(ctx, settings.SpreadsheetID, settings.CredentialsFile)
			if err != nil {
				log.Error().Err(err).Msg("Failed to create sheets client")
				return err
			}

			return server.New(settings, client).ListenAndServe(ctx)
		},
	}
}
