package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octobees/lead-discovery/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadfind",
	Short: "Find local businesses without a website",
	Long:  "Runs grounded Gemini discovery for a category and location and prints actionable leads with outreach drafts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if _, err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
