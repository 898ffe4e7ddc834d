package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholar/apimodels"
)

func (a *App) newFeedbackCommand() *cobra.Command {
	var interactionID, comments string
	var rating int

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate a previous answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.client.SubmitFeedback(cmd.Context(), apimodels.FeedbackRequest{
				InteractionID: interactionID,
				Rating:        rating,
				Comments:      comments,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Feedback submitted.\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&interactionID, "interaction-id", "", "interaction to rate")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating, 1-5 stars")
	cmd.Flags().StringVar(&comments, "comments", "", "additional comments")
	cmd.MarkFlagRequired("interaction-id")
	cmd.MarkFlagRequired("rating")
	return cmd
}
