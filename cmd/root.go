package cmd

import (
	"github.com/carousell/ct-go/pkg/logger/log"
	"github.com/joho/godotenv"
	"github.com/minhtran-ct/collab-view/internal/app"
	"github.com/minhtran-ct/collab-view/internal/server"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "collab-view",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		app.Invoke(
			server.StartServer,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
