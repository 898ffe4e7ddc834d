// Package pdfutil runs local structural checks on PDF files before they are
// shipped to the backend, so an unreadable file costs no round trip.
package pdfutil

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validate checks that data is a structurally sound PDF. Relaxed mode
// matches what the backend's extractor tolerates.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}
	conf := api.LoadConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("not a readable PDF: %w", err)
	}
	return nil
}
