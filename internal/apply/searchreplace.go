package apply

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/fs"
	"github.com/sokinpui/snippy/internal/ui"
)

// ErrNoReplacements is returned when none of a block's SEARCH/REPLACE pairs
// matched the file; the file is left untouched.
var ErrNoReplacements = errors.New("no successful replacements")

// searchReplaceRegex captures one SEARCH/REPLACE pair. The marker runs are
// length tolerant: 3+ `<`, 3+ `=`, 3+ `>`.
var searchReplaceRegex = regexp.MustCompile(
	`(?s)<<<+\s*SEARCH\r?\n(.*?)===+[^\r\n]*\r?\n(.*?)>>>+\s*REPLACE`)

// SearchReplace applies one or more SEARCH/REPLACE pairs against a running
// copy of the target file's content. Pairs apply sequentially: a later pair
// sees the effect of earlier pairs in the same block.
type SearchReplace struct {
	basePath string
}

// NewSearchReplace returns a search-replace applier rooted at basePath.
func NewSearchReplace(basePath string) *SearchReplace {
	return &SearchReplace{basePath: basePath}
}

// Apply resolves each pair in order: an empty search span replaces the whole
// content; an exact match replaces all occurrences; otherwise both spans are
// right-trimmed and retried; a pair that still has no match is skipped. If no
// pair succeeds the call fails with ErrNoReplacements. An all-whitespace
// result deletes the target file.
func (a *SearchReplace) Apply(b block.Block) error {
	path := filepath.Join(a.basePath, b.Filename)

	original, err := fs.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}
	current := strings.ReplaceAll(original, "\r\n", "\n")
	body := strings.ReplaceAll(b.Content, "\r\n", "\n")

	succeeded := 0
	for _, m := range searchReplaceRegex.FindAllStringSubmatch(body, -1) {
		search, replace := m[1], m[2]

		switch {
		case strings.TrimSpace(search) == "":
			// Empty search seeds the whole file.
			current = replace
			succeeded++
		case strings.Contains(current, search):
			current = strings.ReplaceAll(current, search, replace)
			succeeded++
		default:
			// Tolerate trailing-newline drift between the block and the file.
			trimmedSearch := strings.TrimRight(search, " \t\r\n")
			trimmedReplace := strings.TrimRight(replace, " \t\r\n")
			if trimmedSearch != "" && strings.Contains(current, trimmedSearch) {
				current = strings.ReplaceAll(current, trimmedSearch, trimmedReplace)
				succeeded++
			} else {
				ui.Error("Failed to find content to replace in %s: %q", path, search)
			}
		}
	}

	if succeeded == 0 {
		return fmt.Errorf("%w in %s", ErrNoReplacements, path)
	}

	if strings.TrimSpace(current) == "" {
		if err := fs.Remove(path); err != nil {
			return err
		}
		ui.Success("Deleted %s", path)
	} else {
		if err := fs.WriteFile(path, current); err != nil {
			return err
		}
		ui.Success("Applied search-replace to %s", path)
	}

	printDiff(path, original, current)
	return nil
}
