package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scholar/internal/gateway"
	"scholar/internal/render"
)

func (a *App) newProgressCommand() *cobra.Command {
	var timeRange, output string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Analyze learning progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "Analyzing learning progress for user %s\n\n", a.profile.UserID)
			snapshot, err := a.client.GetAnalytics(cmd.Context(), a.profile.UserID, gateway.TimeRange(timeRange))
			if err != nil {
				return err
			}
			render.Snapshot(a.out, snapshot)

			if output != "" {
				if err := writeJSONFile(output, snapshot); err != nil {
					return fmt.Errorf("save results: %w", err)
				}
				fmt.Fprintf(a.out, "\nResults saved to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timeRange, "time-range", string(gateway.TimeRange30Days), "analysis window (7days, 30days, 90days)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the snapshot as JSON")
	return cmd
}

func (a *App) newPatternsCommand() *cobra.Command {
	var limit int
	var output string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Analyze query patterns across all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := a.client.GetQueryPatterns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			render.Patterns(a.out, patterns)

			if output != "" {
				if err := writeJSONFile(output, patterns); err != nil {
					return fmt.Errorf("save results: %w", err)
				}
				fmt.Fprintf(a.out, "\nResults saved to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "number of recent interactions to analyze")
	cmd.Flags().StringVarP(&output, "output", "o", "", "save the report as JSON")
	return cmd
}

func (a *App) newExportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a year of learning data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unsupported format %q (json or csv)", format)
			}

			snapshot, err := a.client.GetAnalytics(cmd.Context(), a.profile.UserID, gateway.TimeRange365Days)
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("user_data_%s.%s", a.profile.UserID, format)
			}

			switch format {
			case "json":
				err = writeJSONFile(output, snapshot)
			case "csv":
				err = writeSnapshotCSV(output, snapshot)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(a.out, "Data exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (json or csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	return cmd
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeSnapshotCSV(path string, s any) error {
	// Flatten the snapshot into a header row plus one value row.
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := make([]string, len(keys))
	for i, k := range keys {
		row[i] = flatValue(flat[k])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(keys); err != nil {
		return err
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func flatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = flatValue(p)
		}
		return strings.Join(parts, ";")
	default:
		data, _ := json.Marshal(val)
		return string(data)
	}
}
