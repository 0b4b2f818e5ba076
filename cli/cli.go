// Package cli parses command-line flags into a Config.
package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Watch      bool
	Once       bool
	Copy       bool
	AST        bool
	TUI        bool
	BasePath   string
	LogsPath   string
	IntervalMs int
	FirstLine  string
	Extensions []string
	Args       []string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.BoolVarP(&cfg.Watch, "watch", "w", false, "Watch the clipboard and apply new content continuously.")
	pflag.BoolVar(&cfg.Once, "once", false, "With --watch, process the clipboard once and exit.")
	pflag.BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the given files to the clipboard as labeled markdown blocks.")
	pflag.BoolVar(&cfg.AST, "ast", false, "Use the markdown AST extractor instead of the positional scanner.")
	pflag.BoolVarP(&cfg.TUI, "tui", "t", false, "Show an interactive progress view while applying.")
	pflag.StringVarP(&cfg.BasePath, "base", "b", "", "Base directory block filenames resolve against (default: current directory).")
	pflag.StringVar(&cfg.LogsPath, "logs", "", "Directory for failed-patch diagnostics (default: .snippy-logs).")
	pflag.IntVarP(&cfg.IntervalMs, "interval", "i", 0, "Clipboard polling interval in milliseconds for watch mode.")
	pflag.StringVar(&cfg.FirstLine, "first-line", "", "First-line identifier marking self-copied clipboard content.")
	pflag.StringSliceVarP(&cfg.Extensions, "extension", "e", []string{}, "Filter applied blocks by filename extension (e.g. 'py', 'go').")

	pflag.Usage = func() {
		fmt.Println("Usage: snippy [flags] [files...]")
		fmt.Println("\nExtract labeled code, diff and edit blocks from stdin (pipe) or the")
		fmt.Println("clipboard and apply them to the filesystem.")
		fmt.Println("\nExamples:")
		fmt.Println("  pbpaste | snippy")
		fmt.Println("  snippy --watch")
		fmt.Println("  snippy --copy src/*.go")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()
	cfg.Args = pflag.Args()

	if cfg.Watch && cfg.Copy {
		return nil, fmt.Errorf("error: --watch and --copy are mutually exclusive")
	}
	if cfg.Copy && len(cfg.Args) == 0 {
		return nil, fmt.Errorf("error: --copy requires at least one file or pattern")
	}

	// Normalize extensions to a leading dot.
	for i, ext := range cfg.Extensions {
		if len(ext) > 0 && ext[0] != '.' {
			cfg.Extensions[i] = "." + ext
		}
	}

	return cfg, nil
}
