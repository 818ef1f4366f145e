package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

// SaveResults writes the full result list, human-inspectable and safe to
// delete to force recomputation.
func SaveResults(path string, analyses []dataset.ResultAnalysis) error {
	data, err := json.MarshalIndent(analyses, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// LoadResults reads a persisted result list, resetting quotes so the
// enricher starts from a clean default.
func LoadResults(path string) ([]dataset.ResultAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var analyses []dataset.ResultAnalysis
	if err := json.Unmarshal(data, &analyses); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	for i := range analyses {
		analyses[i].Quotes = ""
	}
	return analyses, nil
}
