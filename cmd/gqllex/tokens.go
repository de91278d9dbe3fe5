package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	adaptgrpc "github.com/gqllex/gqllex/internal/adapters/grpc"
	"github.com/gqllex/gqllex/internal/config"
	"github.com/gqllex/gqllex/internal/domain"
	"github.com/gqllex/gqllex/internal/engine"
	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/highlight"
	"github.com/gqllex/gqllex/internal/protocol"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func cmdTokens(cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", os.Getenv("GQLLEX_ADDR"), "lex through the gqllexd daemon at this address")
	format := fs.String("format", cfg.Output.Format, "output format: text, json or highlight")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *format == config.FormatHighlight {
		return cmdHighlight(cfg, fs.Args(), stdin, stdout, stderr)
	}

	doc, err := readDocument(cfg, fs.Arg(0), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := lex(ctx, *addr, doc)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *format == config.FormatJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	} else {
		writeText(stdout, stderr, result)
	}
	if !result.OK() {
		return 1
	}
	return 0
}

// lex runs doc through the daemon at addr, or in process when addr is empty.
func lex(ctx context.Context, addr string, doc domain.Document) (*domain.Result, error) {
	if addr == "" {
		return engine.New(nil).Lex(ctx, doc)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	return adaptgrpc.NewLexerClient(conn).LexDocument(ctx, doc)
}

func writeText(stdout, stderr io.Writer, result *domain.Result) {
	for _, rec := range result.Tokens {
		if rec.Value != nil {
			fmt.Fprintf(stdout, "%d:%d\t%s\t%q\n", rec.Line, rec.Column, rec.Kind, *rec.Value)
		} else {
			fmt.Fprintf(stdout, "%d:%d\t%s\n", rec.Line, rec.Column, rec.Kind)
		}
	}
	if result.Err != nil {
		printFormatted(stderr, result.Name, result.Err)
	}
}

func writeJSON(w io.Writer, result *domain.Result) error {
	tw := protocol.NewTokenWriter(w)
	for _, rec := range result.Tokens {
		if err := tw.Token(result.Name, rec); err != nil {
			return err
		}
	}
	if result.Err != nil {
		if err := tw.Error(result.Name, *result.Err); err != nil {
			return err
		}
	}
	return tw.Done(result.Name, len(result.Tokens))
}

func printFormatted(w io.Writer, name string, ferr *gqlerror.FormattedError) {
	if len(ferr.Locations) == 0 {
		fmt.Fprintf(w, "%s: %s\n", name, ferr.Message)
		return
	}
	for _, loc := range ferr.Locations {
		fmt.Fprintf(w, "%s:%s: %s\n", name, loc, ferr.Message)
	}
}

func cmdHighlight(cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	doc, err := readDocument(cfg, firstArg(args), stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	src, err := doc.Source()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	out, err := highlight.New(highlight.DefaultTheme()).Highlight(src)
	if err != nil {
		fmt.Fprintln(stderr, gqlerror.Print(err))
		return 1
	}
	fmt.Fprint(stdout, out)
	return 0
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
