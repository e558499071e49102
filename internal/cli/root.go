package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rohan/saarthi/pkg/config"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "saarthi",
	Short: "Natural-language browser automation agent",
	Long:  "Saarthi: describe what you want done on the web; a language model plans the steps and a managed browser replays them.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: saarthi.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if _, err := os.Stat("saarthi.yaml"); err == nil {
		return config.Load("saarthi.yaml")
	}
	return config.Default(), nil
}
