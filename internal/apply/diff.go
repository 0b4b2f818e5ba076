package apply

import (
	"fmt"
	"path/filepath"

	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/fs"
	"github.com/sokinpui/snippy/internal/udiff"
	"github.com/sokinpui/snippy/internal/ui"
)

// Diff applies a block as a unified diff patch. On either parse or apply
// failure a diagnostic artifact is written under the logs path before the
// error propagates, and the target file is left untouched.
type Diff struct {
	basePath string
	logsPath string
}

// NewDiff returns a diff applier rooted at basePath, logging diagnostics
// under logsPath.
func NewDiff(basePath, logsPath string) *Diff {
	return &Diff{basePath: basePath, logsPath: logsPath}
}

func (a *Diff) Apply(b block.Block) error {
	path := filepath.Join(a.basePath, b.Filename)

	current, err := fs.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}

	patch, err := udiff.Parse(b.Content)
	if err != nil {
		a.logFailure(path, current, b.Content, err)
		return fmt.Errorf("failed to parse diff for %s: %w", path, err)
	}

	newContent, err := udiff.Apply(current, patch)
	if err != nil {
		a.logFailure(path, current, b.Content, err)
		return fmt.Errorf("failed to apply diff for %s: %w", path, err)
	}

	printDiff(path, current, newContent)
	if err := fs.WriteFile(path, newContent); err != nil {
		return err
	}
	ui.Success("Applied diff to %s", path)
	return nil
}

func (a *Diff) logFailure(path, current, diff string, cause error) {
	if err := writeDiagnostics(a.logsPath, path, current, diff, cause.Error()); err != nil {
		ui.Warning("Could not persist diagnostics for %s: %v", path, err)
	}
}
