package main

import (
	"encoding/json"
	"fmt"
	"os"

	"freight/internal/offers"
	"freight/internal/server"

	"github.com/spf13/cobra"
)

var shipmentPath string

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print the offers for a shipment file as JSON",
	Long: `quote reads a shipment in the JSON request format of POST /api/v1/offers
({"shipment": {...}}) and prints the ranked offers. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath, os.Stderr)
		if err != nil {
			return err
		}
		defer a.close()

		content, err := os.ReadFile(shipmentPath)
		if err != nil {
			return fmt.Errorf("error reading shipment: %w", err)
		}

		var req offers.Request
		if err := json.Unmarshal(content, &req); err != nil {
			return fmt.Errorf("error parsing shipment: %w", err)
		}
		if err := server.ValidateStruct(&req); err != nil {
			return fmt.Errorf("invalid shipment: %w", err)
		}

		response, err := a.offers.GetOffers(cmd.Context(), req)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	},
}

func init() {
	quoteCmd.Flags().StringVar(&shipmentPath, "shipment", "", "shipment request file (JSON)")
	quoteCmd.MarkFlagRequired("shipment")
}
