// Package root contains the root command for the application
package root

import (
	"fjacquet/cashsense/internal/common"
	"fjacquet/cashsense/internal/config"
	"fjacquet/cashsense/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to all commands
	// after PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cashsense",
		Short: "A personal-finance backend CLI for demo transaction data.",
		Long: `cashsense generates, validates and manages synthetic transaction data
for demo mode and tests: calendar-aware recurring and seasonal transactions,
category-weighted filler activity, and schema validation of external records.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cashsense!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Log = config.ConfigureLogging(Cfg)

			// Propagate the configured logger to shared packages
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
			common.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
		},
	}

	// Shared command flags
	User   string
	Days   int
	Count  int
	Input  string
	Output string
	Format string
)

// Init initializes the root command flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&User, "user", "u", "", "User identifier")
}
