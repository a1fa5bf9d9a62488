package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stepsolve/stepsolve/internal/api"
	"github.com/stepsolve/stepsolve/internal/config"
	"github.com/stepsolve/stepsolve/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml to the stepsolve home directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		path := h.ConfigPath()
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}

		fmt.Printf("Wrote default config to %s\n", path)
		fmt.Println("Set provider keys via GEMINI_API_KEY, PERPLEXITY_API_KEY, and OPENAI_API_KEY.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		return api.Output(maskSecrets(*mgr.Get()))
	},
}

// maskSecrets returns a copy of cfg safe for printing, with resolved provider
// API keys replaced by a placeholder. The struct copy is shallow, so the
// providers map is rebuilt rather than mutated in place.
func maskSecrets(cfg config.Config) config.Config {
	masked := make(map[string]config.ProviderCfg, len(cfg.Providers))
	for name, p := range cfg.Providers {
		if p.APIKey != "" {
			p.APIKey = "(set)"
		}
		masked[name] = p
	}
	cfg.Providers = masked
	return cfg
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
