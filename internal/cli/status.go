package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholar/internal/render"
)

func (a *App) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and check the backend connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			render.Card(a.out, "Configuration", [][2]string{
				{"API URL", a.client.BaseURL()},
				{"User ID", a.profile.UserID},
				{"Profile", a.profile.Path()},
			})

			info, err := a.client.Health(cmd.Context())
			if err != nil {
				fmt.Fprintf(a.out, "\nAPI connection: failed (%v)\n", err)
				return err
			}
			fmt.Fprintf(a.out, "\nAPI connection: ok\n")
			if info.Version != "" {
				fmt.Fprintf(a.out, "Server version: %s\n", info.Version)
			}
			return nil
		},
	}
}
