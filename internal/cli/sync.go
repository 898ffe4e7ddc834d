package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (a *App) newSyncCommand() *cobra.Command {
	var subject string
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync DIR",
		Short: "Upload every PDF in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			uploaded, failed, err := a.syncDir(cmd, dir, subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Synced %s: %d uploaded, %d failed\n", dir, uploaded, failed)

			if !watch {
				if failed > 0 {
					return fmt.Errorf("%d uploads failed", failed)
				}
				return nil
			}
			return a.watchDir(cmd, dir, subject)
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "general", "subject assigned to uploaded documents")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and upload new PDFs as they appear")
	return cmd
}

func (a *App) syncDir(cmd *cobra.Command, dir, subject string) (uploaded, failed int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("read directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPDF(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		result, err := a.uploadFile(cmd, path, subject)
		if err != nil {
			slog.Error("upload failed", "file", path, "error", err)
			failed++
			continue
		}
		fmt.Fprintf(a.out, "  %s -> %s (%d chunks)\n", entry.Name(), result.DocumentID, result.Chunks)
		uploaded++
	}
	return uploaded, failed, nil
}

// watchDir uploads PDFs as they land in dir, until an interrupt or a
// watcher error ends the loop.
func (a *App) watchDir(cmd *cobra.Command, dir, subject string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(a.out, "Watching %s for new PDFs (Ctrl-C to stop)\n", dir)

	for {
		select {
		case sig := <-shutdown:
			slog.Info("stopping watcher", "signal", sig)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isPDF(event.Name) {
				continue
			}
			result, err := a.uploadFile(cmd, event.Name, subject)
			if err != nil {
				// Editors and downloads emit writes for partially
				// written files; report and keep watching.
				slog.Error("upload failed", "file", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(a.out, "  %s -> %s (%d chunks)\n", filepath.Base(event.Name), result.DocumentID, result.Chunks)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
