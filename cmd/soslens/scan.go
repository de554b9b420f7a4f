package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soslens/soslens/internal/model"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the reports directory and print discovered reports",
	Long: `Scans the configured reports directory, derives stable identifiers
for each sos report and prints the resulting catalog as JSON. Useful
for verifying a reports directory before wiring it to an agent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		svc, err := buildService(cfg, log)
		if err != nil {
			return err
		}

		list := svc.DiscoverReports(model.ReportFilter{})
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report list: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
