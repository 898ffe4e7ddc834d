package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newResearchCommand() *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "research",
		Short: "Get research suggestions for a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.out, "Researching topic: %s\n", topic)
			suggestions, err := a.client.GetResearchSuggestions(cmd.Context(), topic)
			if err != nil {
				return err
			}
			if suggestions.Suggestions == "" {
				fmt.Fprintf(a.out, "\nNo suggestions available.\n")
				return nil
			}
			fmt.Fprintf(a.out, "\nResearch suggestions:\n%s\n", suggestions.Suggestions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "research topic")
	cmd.MarkFlagRequired("topic")
	return cmd
}
