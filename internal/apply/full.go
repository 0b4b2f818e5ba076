package apply

import (
	"path/filepath"

	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/fs"
	"github.com/sokinpui/snippy/internal/ui"
)

// FullContent writes a block's content verbatim to its target file.
type FullContent struct {
	basePath string
}

// NewFullContent returns a full-content applier rooted at basePath.
func NewFullContent(basePath string) *FullContent {
	return &FullContent{basePath: basePath}
}

// Apply writes b.Content to the target file. An absent file is treated as
// empty; when the content is already identical no write happens, so applying
// the same block twice performs exactly one write.
func (a *FullContent) Apply(b block.Block) error {
	path := filepath.Join(a.basePath, b.Filename)

	old, err := fs.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}
	if old == b.Content {
		ui.Info("No changes detected for %s", path)
		return nil
	}

	printDiff(path, old, b.Content)
	if err := fs.WriteFile(path, b.Content); err != nil {
		return err
	}
	ui.Success("Applied full content to %s", path)
	return nil
}
