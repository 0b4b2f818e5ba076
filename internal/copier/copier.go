// Package copier is the write side of the clipboard: it formats files as
// labeled markdown blocks and places them on the clipboard, in the exact
// shape the extractor knows how to take apart again.
package copier

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/snippy/internal/ignore"
	"github.com/sokinpui/snippy/internal/ui"
)

// Copier formats and copies files to the clipboard.
type Copier struct {
	basePath  string
	firstLine string
	ignored   *ignore.Patterns
}

// New creates a Copier. firstLine is prepended to the copied content so the
// clipboard watcher can recognize and skip self-copied text.
func New(basePath, firstLine string, ignorePatterns []string) *Copier {
	return &Copier{
		basePath:  basePath,
		firstLine: firstLine,
		ignored:   ignore.New(ignorePatterns),
	}
}

// Copy expands patterns, formats every readable file as a heading plus
// fenced block, and writes the result to the clipboard.
func (c *Copier) Copy(patterns []string) error {
	files, err := c.expand(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ui.Warning("No files matched. Nothing to copy.")
		return nil
	}

	var b strings.Builder
	b.WriteString(c.firstLine)
	b.WriteString("\n")
	for _, file := range files {
		data, err := os.ReadFile(filepath.Join(c.basePath, file))
		if err != nil {
			ui.Warning("Failed to read %s: %v", file, err)
			continue
		}
		b.WriteString(formatFile(file, string(data)))
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	ui.Success("Copied %d file(s) to clipboard.", len(files))
	return nil
}

// expand resolves file and directory arguments to relative file paths,
// filtered by the ignore patterns.
func (c *Copier) expand(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(rel string) {
		rel = filepath.ToSlash(rel)
		if c.ignored.ShouldIgnore(rel) {
			return
		}
		if _, ok := seen[rel]; ok {
			return
		}
		seen[rel] = struct{}{}
		files = append(files, rel)
	}

	for _, pattern := range patterns {
		full := filepath.Join(c.basePath, pattern)
		if info, err := os.Stat(full); err == nil && info.IsDir() {
			err := filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				rel, err := filepath.Rel(c.basePath, path)
				if err != nil {
					return err
				}
				add(rel)
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", pattern, err)
			}
			continue
		}

		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(c.basePath, m)
			if err != nil {
				continue
			}
			add(rel)
		}
	}
	return files, nil
}

// formatFile renders one file as a heading plus fenced block, labeled the
// way the extractor resolves filenames.
func formatFile(file, content string) string {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return fmt.Sprintf("### `%s`\n```%s\n%s```\n\n", file, fenceLang(ext), content)
}

// fenceLang maps a file extension to a fence language tag. The tag must
// never be `diff` or `replace`, which would change how the block applies.
func fenceLang(ext string) string {
	switch ext {
	case "", "diff", "replace":
		return "text"
	default:
		return ext
	}
}
