// Command lpcli runs the LP analysis pipeline from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lp-research-go/config"
	"lp-research-go/internal/logging"
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:   "lpcli",
	Short: "lpcli analyzes landing pages with Gemini",
	Long: `lpcli fetches a landing page, extracts its text and asks Gemini for
impactful words, paradoxes, reader voices and desires.

Usage:
  lpcli analyze <url>
  lpcli extract <url> [--prompt]`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		level := flagLogLevel
		if level == "" {
			level = config.Load().LogLevel
		}
		logging.InitWriter(os.Stderr, level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
