package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sokinpui/snippy/internal/block"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
	DiffColor    = color.New(color.Faint)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// Diff prints an observability diff for one file.
func Diff(file, diff string) {
	InfoColor.Fprintf(os.Stderr, "Diff for %s:\n", file)
	DiffColor.Fprint(os.Stderr, diff)
	if len(diff) > 0 && diff[len(diff)-1] != '\n' {
		fmt.Fprintln(os.Stderr)
	}
}

// PrintSummary reports the outcome of one apply run.
func PrintSummary(s block.Summary) {
	Header("\n--- Apply Summary ---")

	if s.Empty() {
		Info("No files were updated.")
		return
	}

	if len(s.Created) > 0 {
		Success("Created %d new file(s):", len(s.Created))
		for _, f := range s.Created {
			Path("- %s", f)
		}
	}
	if len(s.Modified) > 0 {
		Success("Modified %d file(s):", len(s.Modified))
		for _, f := range s.Modified {
			Path("- %s", f)
		}
	}
	if len(s.Deleted) > 0 {
		Success("Deleted %d file(s):", len(s.Deleted))
		for _, f := range s.Deleted {
			Path("- %s", f)
		}
	}
	if len(s.Failed) > 0 {
		Error("Failed to process %d file(s):", len(s.Failed))
		for _, f := range s.Failed {
			Path("- %s", f)
		}
	}
}
