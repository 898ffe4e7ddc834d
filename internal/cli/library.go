package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scholar/apimodels"
	"scholar/internal/library"
	"scholar/internal/render"
)

func (a *App) newLibraryCommand() *cobra.Command {
	var input, search, subject, sortKey string
	var listSubjects bool

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Filter and sort an already-fetched document list",
		Long: `library works on a document list previously saved to disk (for example
from a dashboard export). Filtering and sorting happen entirely locally; this
command never contacts the backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocuments(input)
			if err != nil {
				return err
			}

			if listSubjects {
				subjects := library.Subjects(docs)
				if len(subjects) == 0 {
					fmt.Fprintf(a.out, "No subjects found.\n")
					return nil
				}
				fmt.Fprintf(a.out, "Subjects: %s\n", strings.Join(subjects, ", "))
				return nil
			}

			key := library.SortKey(sortKey)
			switch key {
			case library.SortUploadDate, library.SortFilename, library.SortComplexity:
			default:
				return fmt.Errorf("unknown sort key %q (date, filename, complexity)", sortKey)
			}

			filtered := library.Apply(docs, library.Query{
				Search:  search,
				Subject: subject,
				Sort:    key,
			})
			render.Documents(a.out, filtered)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file holding the document list")
	cmd.Flags().StringVar(&search, "search", "", "substring match on filename or subject")
	cmd.Flags().StringVar(&subject, "subject", library.AllSubjects, "exact subject filter")
	cmd.Flags().StringVar(&sortKey, "sort", string(library.SortUploadDate), "sort key: date, filename, complexity")
	cmd.Flags().BoolVar(&listSubjects, "subjects", false, "list distinct subjects instead of documents")
	cmd.MarkFlagRequired("input")
	return cmd
}

func loadDocuments(path string) ([]apimodels.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}
	var docs []apimodels.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse document list %s: %w", path, err)
	}
	return docs, nil
}
