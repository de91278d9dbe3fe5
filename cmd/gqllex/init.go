package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gqllex/gqllex/internal/config"
)

func cmdInit(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "source name used in error locations")
	format := fs.String("format", config.FormatText, "default output format: text, json or highlight")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cwd, _ := os.Getwd()
	path := config.Path(cwd)

	// Refuse to overwrite existing config
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(stderr, "error: %s already exists\n", path)
		return 1
	}

	cfg := config.Default()
	if *name != "" {
		cfg.Source.Name = *name
	}
	cfg.Output.Format = *format
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	data, err := cfg.Encode()
	if err != nil {
		fmt.Fprintf(stderr, "error encoding config: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(stderr, "error creating %s: %v\n", filepath.Dir(path), err)
		return 1
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(stderr, "error writing %s: %v\n", path, err)
		return 1
	}

	fmt.Fprintf(stderr, "  create %s\n", filepath.Join(".gqllex", "config"))
	fmt.Fprintf(stderr, "\nInitialized gqllex in %s\n", filepath.Base(cwd))
	return 0
}
