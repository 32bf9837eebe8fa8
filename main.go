package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/foige/moxalise-api/internal/app"
)

func main() {
	app.SetupEnvironment()

	root := &cobra.Command{
		Use:           "moxalise-api",
		Short:         "Spreadsheet relay API and scheduled transfer jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(jobCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
