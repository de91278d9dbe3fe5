package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gqllex/gqllex/internal/config"
	"github.com/gqllex/gqllex/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	if os.Args[1] == "init" {
		os.Exit(cmdInit(os.Args[2:], os.Stderr))
	}

	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "tokens":
		os.Exit(cmdTokens(cfg, os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	case "check":
		os.Exit(cmdCheck(cfg, os.Args[2:], os.Stdout, os.Stderr))
	case "highlight":
		os.Exit(cmdHighlight(cfg, os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: gqllex <command> [args]\n\nCommands:\n  tokens [file]      Print the tokens of a document\n  check <files...>   Report lexical errors\n  highlight [file]   Print a document with colors\n  init               Write .gqllex/config\n")
}

// readDocument loads the named file, or stdin when path is empty or "-".
// The source settings from cfg apply to the document.
func readDocument(cfg *config.Config, path string, stdin io.Reader) (domain.Document, error) {
	var (
		data []byte
		err  error
	)
	name := cfg.Source.Name
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
		name = path
	}
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Name:         name,
		Body:         string(data),
		LineOffset:   cfg.Source.LineOffset,
		ColumnOffset: cfg.Source.ColumnOffset,
	}, nil
}
