// Package watch polls a content source and feeds new content through the
// extraction and application pipeline.
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/sokinpui/snippy/internal/ui"
)

// ReadFunc returns the current content of the watched source.
type ReadFunc func() (string, error)

// Processor handles one piece of watched content. It is the only coupling
// between the watcher and the rest of the system.
type Processor func(content string) error

// Watcher polls a source at a fixed interval and hands every new piece of
// content to the processor exactly once.
type Watcher struct {
	interval time.Duration
	// firstLine marks content this tool copied itself; processing it again
	// would loop.
	firstLine string
	read      ReadFunc
	process   Processor

	lastContent string
}

// New creates a Watcher polling read every interval.
func New(interval time.Duration, firstLine string, read ReadFunc, process Processor) *Watcher {
	return &Watcher{
		interval:  interval,
		firstLine: firstLine,
		read:      read,
		process:   process,
	}
}

// Run polls until ctx is cancelled. Processing failures are logged and never
// stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	ui.Info("Watching clipboard (interval %s). Press Ctrl+C to stop.", w.interval)
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping clipboard watcher.")
			return ctx.Err()
		case <-ticker.C:
			w.tick()
		}
	}
}

// RunOnce processes the current content a single time.
func (w *Watcher) RunOnce() error {
	content, err := w.read()
	if err != nil {
		return err
	}
	return w.process(content)
}

func (w *Watcher) tick() {
	content, err := w.read()
	if err != nil {
		ui.Error("Failed to read clipboard: %v", err)
		return
	}
	if w.firstLine != "" && strings.HasPrefix(content, w.firstLine) {
		// Self-copied content; applying it back would recurse.
		return
	}
	if content == w.lastContent {
		return
	}
	w.lastContent = content

	ui.Info("New clipboard content detected")
	if err := w.process(content); err != nil {
		ui.Error("Failed to process content: %v", err)
	}
}
