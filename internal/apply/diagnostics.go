package apply

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sokinpui/snippy/internal/ui"
)

// diagnosticInfo is the persisted failure record for a patch that would not
// apply. It is operator facing; nothing reads it back.
type diagnosticInfo struct {
	FilePath       string `json:"file_path"`
	ErrorMessage   string `json:"error_message"`
	CurrentContent string `json:"current_content"`
	DiffContent    string `json:"diff_content"`
}

// writeDiagnostics persists a timestamped, uniquely named JSON artifact under
// logsPath so a failed patch can be reproduced offline.
func writeDiagnostics(logsPath, filePath, currentContent, diffContent, errMsg string) error {
	if err := os.MkdirAll(logsPath, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory %s: %w", logsPath, err)
	}

	name := fmt.Sprintf("%s_%s_failed_patch_diagnostics.json",
		time.Now().UTC().Format("20060102150405"), uuid.New())
	path := filepath.Join(logsPath, name)

	data, err := json.MarshalIndent(diagnosticInfo{
		FilePath:       filePath,
		ErrorMessage:   errMsg,
		CurrentContent: currentContent,
		DiffContent:    diffContent,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write diagnostics %s: %w", path, err)
	}

	ui.Error("Logged diff error diagnostics: %s", path)
	return nil
}
