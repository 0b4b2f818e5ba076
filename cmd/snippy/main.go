package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/snippy/cli"
	"github.com/sokinpui/snippy/snippy"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := snippy.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		if e, ok := err.(*snippy.DetailedError); ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n--- Stack Trace ---\n%s\n", e.Err, e.Stack)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
