package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "freight",
		Short: "Carrier eligibility scoring and shipment offers",
		Long: `freight ranks carriers for a shipment. Every carrier of the catalog is checked
against its hard constraints and declared rules, scored on delivery speed,
environmental impact, cost and capacity fit, and priced.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "/etc/freight/config.yaml", "configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
}
