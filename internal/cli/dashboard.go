package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"scholar/internal/render"
)

func (a *App) newDashboardCommand() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch the visualization dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "Generating dashboard for user %s\n", a.profile.UserID)
			summary, err := a.client.GetDashboardSummary(cmd.Context(), a.profile.UserID)
			if err != nil {
				return err
			}

			if summary.Message != "" && len(summary.SummaryStats) == 0 {
				fmt.Fprintf(a.out, "No data available for dashboard generation.\n")
				return nil
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			name := fmt.Sprintf("dashboard_%s_%s.json", a.profile.UserID, time.Now().Format("20060102_150405"))
			path := filepath.Join(outputDir, name)
			if err := os.WriteFile(path, summary.Raw, 0o644); err != nil {
				return fmt.Errorf("save dashboard: %w", err)
			}
			fmt.Fprintf(a.out, "Dashboard saved to %s\n\n", path)

			render.SummaryStats(a.out, summary.SummaryStats)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "./dashboard", "directory for dashboard files")
	return cmd
}
