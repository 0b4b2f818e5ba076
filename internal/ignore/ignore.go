// Package ignore filters paths out of copy expansion.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/sokinpui/snippy/internal/ui"
)

// DefaultPatterns covers build output, lockfiles, and tool caches.
var DefaultPatterns = []string{
	"target/**",
	"node_modules/**",
	".git/**",
	"**/*.pyc",
	"**/__pycache__/**",
	".DS_Store",
	"Cargo.lock",
	"package-lock.json",
	"yarn.lock",
	"dist/**",
	"build/**",
	".venv/**",
	".idea/**",
	".env",
	"vendor/**",
	"go.sum",
}

// Patterns matches paths against a set of glob patterns.
type Patterns struct {
	patterns []string
}

// New compiles patterns; nil falls back to DefaultPatterns. Invalid patterns
// are dropped with a warning.
func New(patterns []string) *Patterns {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	var valid []string
	for _, p := range patterns {
		if _, err := filepath.Match(strings.ReplaceAll(p, "**", "*"), ""); err != nil {
			ui.Warning("Invalid ignore pattern %q: %v", p, err)
			continue
		}
		valid = append(valid, p)
	}
	return &Patterns{patterns: valid}
}

// ShouldIgnore reports whether path matches any pattern. A pattern ending in
// `/**` matches the whole subtree; `**/` prefixes match at any depth.
func (p *Patterns) ShouldIgnore(path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range p.patterns {
		if matchPattern(pattern, path) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, path string) bool {
	// dir/** matches everything under dir.
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
		// **/dir/** also matches dir anywhere below the root.
		if inner, ok := strings.CutPrefix(prefix, "**/"); ok {
			if strings.Contains(path, "/"+inner+"/") || strings.HasPrefix(path, inner+"/") {
				return true
			}
		}
		return false
	}
	// **/name matches name at any depth.
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		if ok, _ := filepath.Match(suffix, filepath.Base(path)); ok {
			return true
		}
		return false
	}
	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	// A bare name matches the basename anywhere.
	if !strings.Contains(pattern, "/") {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
