package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"scholar/apimodels"
	"scholar/internal/pdfutil"
)

func (a *App) newUploadCommand() *cobra.Command {
	var file, subject string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a PDF document for analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.uploadFile(cmd, file, subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Uploaded %s\n", filepath.Base(file))
			fmt.Fprintf(a.out, "  Document ID:      %s\n", result.DocumentID)
			fmt.Fprintf(a.out, "  Chunks created:   %d\n", result.Chunks)
			fmt.Fprintf(a.out, "  Complexity score: %.3f\n", result.ComplexityScore)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "PDF file to upload")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject/topic of the document")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("subject")
	return cmd
}

// uploadFile reads and pre-validates one PDF, then ships it. The structural
// check runs locally so a corrupt file costs no round trip.
func (a *App) uploadFile(cmd *cobra.Command, path, subject string) (*apimodels.UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := pdfutil.Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a.client.UploadDocument(cmd.Context(), apimodels.UploadRequest{
		Filename: filepath.Base(path),
		Content:  data,
		Subject:  subject,
		UserID:   a.profile.UserID,
	})
}
