package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scholar/apimodels"
	"scholar/internal/view"
)

func (a *App) newTutorCommand() *cobra.Command {
	var message, chatContext string

	cmd := &cobra.Command{
		Use:   "tutor",
		Short: "Chat with the AI tutor",
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := &view.Workflow[*apimodels.TutorReply]{}
			defer wf.Close()

			if message != "" {
				return a.tutorOnce(cmd, wf, message, chatContext)
			}

			fmt.Fprintf(a.out, "Chat with the AI tutor. Type 'quit' to exit.\n")
			scanner := bufio.NewScanner(a.in)
			for {
				fmt.Fprintf(a.out, "\nYou: ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				msg := strings.TrimSpace(scanner.Text())
				if msg == "" {
					continue
				}
				if msg == "quit" || msg == "exit" || msg == "q" {
					return nil
				}
				if err := a.tutorOnce(cmd, wf, msg, chatContext); err != nil {
					a.notifyError(err)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "single message to send to the tutor")
	cmd.Flags().StringVar(&chatContext, "context", "", "extra context for the tutor")
	return cmd
}

func (a *App) tutorOnce(cmd *cobra.Command, wf *view.Workflow[*apimodels.TutorReply], message, chatContext string) error {
	reply, err := view.Run(wf, func() (*apimodels.TutorReply, error) {
		return a.client.ChatWithTutor(cmd.Context(), message, chatContext)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nTutor: %s\n", reply.Response)
	return nil
}
