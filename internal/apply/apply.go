// Package apply turns extracted blocks into filesystem mutations. Each block
// kind has its own applier strategy; ForKind picks the right one.
package apply

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/ui"
)

// Applier converts one parsed block into a filesystem mutation. Apply is
// all-or-nothing for its target file: either the new content (or deletion)
// is fully committed, or the file is left exactly as found.
type Applier interface {
	Apply(b block.Block) error
}

// Options configures the appliers for one run.
type Options struct {
	// BasePath is joined with each block's filename to locate the target.
	BasePath string
	// LogsPath receives diagnostic artifacts on diff-apply failure.
	LogsPath string
}

// ForKind returns the applier strategy matching a block kind.
func ForKind(kind block.Kind, opts Options) Applier {
	switch kind {
	case block.UnifiedDiff:
		return NewDiff(opts.BasePath, opts.LogsPath)
	case block.SearchReplace:
		return NewSearchReplace(opts.BasePath)
	default:
		return NewFullContent(opts.BasePath)
	}
}

// printDiff logs an observability diff between the old and new content of a
// file. Failures to render the diff are not application failures.
func printDiff(file, before, after string) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: file,
		ToFile:   file,
		Context:  3,
	})
	if err != nil {
		ui.Warning("Could not render diff for %s: %v", file, err)
		return
	}
	ui.Diff(file, text)
}
