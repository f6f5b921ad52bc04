package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/recruita/pkg/observability"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database and lock backend",
	Long: `Run every registered dependency check and print its result. The
command fails when a critical dependency is down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Organization: %s\n", app.OrganizationID)
		if app.Health == nil {
			fmt.Fprintln(out, "No health checks registered.")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		report := app.Health.Check(ctx)

		for _, name := range app.Health.Names() {
			result := report.Checks[name]
			line := fmt.Sprintf("  %-10s %s (%s)", name, result.Status, result.Duration.Round(time.Millisecond))
			if result.Message != "" {
				line += ": " + result.Message
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintf(out, "Status: %s\n", report.Status)

		if report.Status == observability.HealthStatusUnhealthy {
			return fmt.Errorf("service is %s", report.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
