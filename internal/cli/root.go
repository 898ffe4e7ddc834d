// Package cli wires the terminal front end. Each command is one view: it
// owns its local state, calls the gateway, and renders the result or an
// error notice. No command depends on another command's state.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scholar/internal/config"
	"scholar/internal/gateway"
)

type App struct {
	cfg     *config.Config
	profile *Profile
	client  *gateway.Client
	out     io.Writer
	in      io.Reader
}

func Execute(cfg *config.Config) error {
	app := &App{cfg: cfg, out: os.Stdout, in: os.Stdin}
	if err := NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func NewRootCommand(app *App) *cobra.Command {
	var userID, apiURL string

	root := &cobra.Command{
		Use:   "scholar",
		Short: "Client for the academic document analyzer",
		Long: `scholar talks to the academic document analyzer backend: upload PDF
documents, ask questions against them, chat with the AI tutor, fetch research
suggestions, and review learning analytics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(userID, apiURL)
		},
	}

	root.PersistentFlags().StringVar(&userID, "user-id", "", "user ID for this session (persisted)")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (persisted)")

	root.AddCommand(
		app.newUploadCommand(),
		app.newAskCommand(),
		app.newTutorCommand(),
		app.newResearchCommand(),
		app.newProgressCommand(),
		app.newPatternsCommand(),
		app.newDashboardCommand(),
		app.newLibraryCommand(),
		app.newFeedbackCommand(),
		app.newExportCommand(),
		app.newSyncCommand(),
		app.newStatusCommand(),
	)
	return root
}

// init resolves the session profile and builds the gateway client. Flag
// values override the stored profile and are written back, the way the
// profile carries a session between invocations.
func (a *App) init(userID, apiURL string) error {
	profile, err := LoadProfile()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if profile.APIURL == "" {
		profile.APIURL = a.cfg.API.BaseURL
	}
	if userID != "" {
		profile.UserID = userID
	}
	if apiURL != "" {
		profile.APIURL = apiURL
	}
	if err := profile.Save(); err != nil {
		slog.Warn("could not persist profile", "error", err)
	}
	a.profile = profile

	client, err := gateway.NewClient(profile.APIURL, gateway.WithTimeout(a.cfg.API.Timeout))
	if err != nil {
		return fmt.Errorf("create gateway client: %w", err)
	}
	a.client = client
	return nil
}

// notifyError surfaces a failure inside an interactive loop as a
// non-blocking notice: the session keeps running and the user is free to
// retry. One-shot commands return their error instead.
func (a *App) notifyError(err error) {
	switch {
	case gateway.IsValidation(err):
		fmt.Fprintf(a.out, "Invalid input: %v\n", err)
	case gateway.IsTransport(err):
		fmt.Fprintf(a.out, "Backend request failed: %v\n", err)
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
