package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradecore",
	Short: "The tradecore CLI performs common tasks around the trading runtime.",
	Long: `The tradecore CLI performs common tasks around the trading runtime. ` +
		`It currently provides recording inspection (inspect) and a scheduler ` +
		`throughput benchmark (bench).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env file is fine; flags and defaults still apply.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
