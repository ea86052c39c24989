package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"analyzer-backend/internal/analysis"
)

// Save writes the result to a timestamped JSON file next to the working
// directory and returns the file name.
func Save(result analysis.Result, sourcePath string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	outputFile := filepath.Base(sourcePath) + "_" + timestamp + "_analysis.json"

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFile, payload, 0o644); err != nil {
		return "", err
	}
	return outputFile, nil
}
