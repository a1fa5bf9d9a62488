package main

import (
	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "stepsolve",
	Short: "Photo-to-solution gateway for math and physics problems",
	Long: `Stepsolve relays problem photos to LLM providers and normalizes their
replies into a structured solution.

A photo goes in, and a consistent JSON object comes out:
  - latex:  the problem restated as LaTeX
  - answer: the final answer (numeric where possible)
  - steps:  the worked solution, one step per entry
  - notes:  ambiguities or provider remarks

Providers (Gemini, Perplexity, ChatGPT) are configured in config.yaml and
hot-reloaded on change.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.stepsolve/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "stepsolve home directory (default: ~/.stepsolve)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
