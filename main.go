// main.go starts the MCP server on stdio or HTTP depending on
// configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	log.SetPrefix("[freepik-mcp] ")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	transport := flag.String("transport", cfg.Transport, "transport to serve: stdio or http")
	addr := flag.String("addr", cfg.HTTPAddr, "listen address for the http transport")
	flag.Parse()
	cfg.Transport = *transport
	cfg.HTTPAddr = *addr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("serve MCP: %v", err)
	}
}

// run dispatches on the configured transport. "sse" is an alias for
// http; that mode serves both endpoint styles.
func run(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		err := runStdio(ctx, cfg)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case "http", "sse":
		return runHTTP(ctx, cfg)
	}
	return fmt.Errorf("transport %q is not supported (stdio, http)", cfg.Transport)
}
