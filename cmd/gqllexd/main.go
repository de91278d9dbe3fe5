package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	adaptgrpc "github.com/gqllex/gqllex/internal/adapters/grpc"
	"github.com/gqllex/gqllex/internal/adapters/sqlite"
	"github.com/gqllex/gqllex/internal/config"
	"github.com/gqllex/gqllex/internal/engine"
	"google.golang.org/grpc"
)

func main() {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	dbPath := os.Getenv("GQLLEX_DB")
	if dbPath == "" {
		dbPath = cfg.Cache.Path
	}

	listenAddr := os.Getenv("GQLLEX_LISTEN")
	if listenAddr == "" {
		listenAddr = cfg.Server.Listen
	}

	var eng *engine.Engine
	if dbPath == "" {
		log.Printf("cache disabled")
		eng = engine.New(nil)
	} else {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dir, err)
				os.Exit(1)
			}
		}

		store, err := sqlite.NewStore(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		eng = engine.New(store)
	}

	srv := adaptgrpc.NewLexServer(eng)

	grpcServer := grpc.NewServer()
	adaptgrpc.RegisterLexerServer(grpcServer, srv)

	lis, err := listen(listenAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to listen on %s: %v\n", listenAddr, err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("received %s, shutting down", sig)
		grpcServer.GracefulStop()
	}()

	log.Printf("gqllexd listening on %s (cache %s)", listenAddr, dbPath)
	if err := grpcServer.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func listen(addr string) (net.Listener, error) {
	if sockPath, ok := strings.CutPrefix(addr, "unix://"); ok {
		os.Remove(sockPath)
		return net.Listen("unix", sockPath)
	}
	return net.Listen("tcp", addr)
}
