package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"scholar/apimodels"
	"scholar/internal/render"
	"scholar/internal/view"
)

func (a *App) newAskCommand() *cobra.Command {
	var question, documentID string
	var interactive bool
	var rating int
	var comment string

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask questions about uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			// One workflow per view. Each question is a fresh attempt;
			// a superseded attempt's result is never rendered.
			wf := &view.Workflow[*apimodels.Interaction]{}
			defer wf.Close()

			if interactive {
				fmt.Fprintf(a.out, "Interactive Q&A session. Type 'quit' to exit.\n")
				scanner := bufio.NewScanner(a.in)
				for {
					fmt.Fprintf(a.out, "\nYour question: ")
					if !scanner.Scan() {
						return scanner.Err()
					}
					q := strings.TrimSpace(scanner.Text())
					if q == "" {
						continue
					}
					if q == "quit" || q == "exit" || q == "q" {
						return nil
					}
					// A failed question is a notice, not the end of the
					// session; the prompt comes right back.
					if err := a.askOnce(cmd, wf, q, documentID, rating, comment); err != nil {
						a.notifyError(err)
					}
				}
			}

			if question == "" {
				return fmt.Errorf("a question is required; pass --question or use --interactive")
			}
			return a.askOnce(cmd, wf, question, documentID, rating, comment)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question to ask")
	cmd.Flags().StringVarP(&documentID, "document-id", "d", "", "restrict to one document (default: search all)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive Q&A session")
	cmd.Flags().IntVar(&rating, "rate", 0, "rate the answer 1-5 after it is shown")
	cmd.Flags().StringVar(&comment, "comment", "", "feedback comment to send with the rating")
	return cmd
}

func (a *App) askOnce(cmd *cobra.Command, wf *view.Workflow[*apimodels.Interaction], question, documentID string, rating int, comment string) error {
	fmt.Fprintf(a.out, "Searching for an answer...\n")
	interaction, err := view.Run(wf, func() (*apimodels.Interaction, error) {
		return a.client.AskQuestion(cmd.Context(), apimodels.AskRequest{
			Question:   question,
			DocumentID: documentID,
			UserID:     a.profile.UserID,
		})
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	render.Interaction(a.out, interaction)

	// Feedback is best effort: a failure here is reported but never undoes
	// the answer already shown.
	if rating > 0 && interaction.InteractionID != "" {
		_, err := a.client.SubmitFeedback(cmd.Context(), apimodels.FeedbackRequest{
			InteractionID: interaction.InteractionID,
			Rating:        rating,
			Comments:      comment,
		})
		if err != nil {
			slog.Warn("feedback submission failed", "interaction_id", interaction.InteractionID, "error", err)
			fmt.Fprintf(a.out, "\n(feedback could not be submitted: %v)\n", err)
		} else {
			fmt.Fprintf(a.out, "\nFeedback submitted.\n")
		}
	}
	return nil
}
