package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"PriceSentinel/internal/model"
)

// LoadLatest reads the last run snapshot from a JSON file. Returns nil if the file doesn't exist.
func LoadLatest(filePath string) (*model.RunSummary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var summary model.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return &summary, nil
}

// SaveLatest writes the run snapshot to a JSON file, replacing it atomically.
func SaveLatest(filePath string, summary *model.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
