// Package snippy wires the extraction and application engines together and
// is the entry point for both the CLI and library callers.
package snippy

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/snippy/cli"
	"github.com/sokinpui/snippy/internal/apply"
	"github.com/sokinpui/snippy/internal/block"
	"github.com/sokinpui/snippy/internal/config"
	"github.com/sokinpui/snippy/internal/copier"
	"github.com/sokinpui/snippy/internal/extract"
	"github.com/sokinpui/snippy/internal/fs"
	"github.com/sokinpui/snippy/internal/source"
	"github.com/sokinpui/snippy/internal/tui"
	"github.com/sokinpui/snippy/internal/ui"
	"github.com/sokinpui/snippy/internal/watch"
)

// App orchestrates the entire application logic.
type App struct {
	cfg       *cli.Config
	fileCfg   config.Config
	extractor extract.Extractor
	provider  *source.Provider
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance, merging flag values over the optional
// .snippy.yaml defaults.
func New(cfg *cli.Config) (*App, error) {
	base := cfg.BasePath
	if base == "" {
		base = "."
	}
	fileCfg, err := config.Load(base)
	if err != nil {
		return nil, err
	}
	if cfg.BasePath != "" {
		fileCfg.BasePath = cfg.BasePath
	}
	if cfg.LogsPath != "" {
		fileCfg.LogsPath = cfg.LogsPath
	}
	if cfg.IntervalMs > 0 {
		fileCfg.IntervalMs = cfg.IntervalMs
	}
	if cfg.FirstLine != "" {
		fileCfg.FirstLine = cfg.FirstLine
	}
	if len(cfg.Extensions) > 0 {
		fileCfg.Extensions = cfg.Extensions
	}
	if !filepath.IsAbs(fileCfg.LogsPath) {
		fileCfg.LogsPath = filepath.Join(fileCfg.BasePath, fileCfg.LogsPath)
	}

	var extractor extract.Extractor = extract.NewDelimiterExtractor()
	if cfg.AST {
		extractor = extract.NewASTExtractor()
	}

	return &App{
		cfg:       cfg,
		fileCfg:   fileCfg,
		extractor: extractor,
		provider:  source.New(),
	}, nil
}

// Run executes the mode selected by the flags.
func (a *App) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Copy:
		return a.copyFiles()
	case a.cfg.Watch:
		return a.watchClipboard()
	default:
		return a.processOnce()
	}
}

// processOnce reads content from stdin or the clipboard and applies it.
func (a *App) processOnce() error {
	content, err := a.provider.GetContent()
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	if a.cfg.TUI {
		return tui.Run(func() (block.Summary, error) {
			return a.Process(content), nil
		})
	}

	summary := a.Process(content)
	ui.PrintSummary(summary)
	return nil
}

// Process extracts all blocks from content and applies each one
// independently; one failing block never stops its siblings.
func (a *App) Process(content string) block.Summary {
	var summary block.Summary

	blocks, err := a.Extract(content)
	if err != nil {
		summary.Message = err.Error()
		return summary
	}
	if len(blocks) == 0 {
		summary.Message = "No valid blocks were found. Nothing to do."
		return summary
	}

	ui.Header("--- Applying %d block(s) ---", len(blocks))
	opts := apply.Options{BasePath: a.fileCfg.BasePath, LogsPath: a.fileCfg.LogsPath}
	for _, b := range blocks {
		if !hasAllowedExtension(b.Filename, a.fileCfg.Extensions) {
			continue
		}
		target := filepath.Join(a.fileCfg.BasePath, b.Filename)
		existed := fs.Exists(target)

		if err := apply.ForKind(b.Kind, opts).Apply(b); err != nil {
			ui.Error("Failed to apply block for %s: %v", b.Filename, err)
			summary.Failed = append(summary.Failed, b.Filename)
			continue
		}

		switch {
		case !fs.Exists(target):
			summary.Deleted = append(summary.Deleted, b.Filename)
		case existed:
			summary.Modified = append(summary.Modified, b.Filename)
		default:
			summary.Created = append(summary.Created, b.Filename)
		}
	}
	return summary
}

// Extract returns all labeled blocks in content, in source order.
func (a *App) Extract(content string) ([]block.Block, error) {
	return a.extractor.Extract(content)
}

// watchClipboard runs the clipboard polling loop until interrupted.
func (a *App) watchClipboard() error {
	w := watch.New(
		time.Duration(a.fileCfg.IntervalMs)*time.Millisecond,
		a.fileCfg.FirstLine,
		clipboard.ReadAll,
		func(content string) error {
			summary := a.Process(content)
			ui.PrintSummary(summary)
			if len(summary.Failed) > 0 {
				return fmt.Errorf("%d block(s) failed", len(summary.Failed))
			}
			return nil
		},
	)

	if a.cfg.Once {
		return w.RunOnce()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// copyFiles formats the requested files and puts them on the clipboard.
func (a *App) copyFiles() error {
	c := copier.New(a.fileCfg.BasePath, a.fileCfg.FirstLine, a.fileCfg.IgnorePatterns)
	return c.Copy(a.cfg.Args)
}

func hasAllowedExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
