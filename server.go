// server.go binds the MCP server to its transports: stdio for local
// clients, and an HTTP mux serving the streamable endpoint, the legacy
// SSE endpoint, and a health check.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// runStdio serves a single session over stdin/stdout.
func runStdio(ctx context.Context, cfg Config) error {
	if cfg.APIKey == "" {
		log.Printf("warning: FREEPIK_API_KEY is not set; tool calls will fail with a config error")
	}
	server := newMCPServer(newToolset(cfg, cfg.APIKey))
	return server.Run(ctx, &mcp.StdioTransport{})
}

// httpAdapter owns the session-facing HTTP surface. MCP servers are
// built per API key and cached; the cache is the only shared mutable
// state, guarded by a mutex since the HTTP host is multi-goroutine.
type httpAdapter struct {
	cfg Config

	mu      sync.Mutex
	servers map[string]*mcp.Server // keyed by API key digest
}

func newHTTPAdapter(cfg Config) *httpAdapter {
	return &httpAdapter{cfg: cfg, servers: make(map[string]*mcp.Server)}
}

// serverFor resolves the MCP server for one incoming request. A config
// blob in the query string wins over the environment key. With no key
// anywhere the session still initializes, but every tool call on it
// reports a config error and no vendor request is made.
func (a *httpAdapter) serverFor(r *http.Request) *mcp.Server {
	apiKey := a.cfg.APIKey
	sc, err := decodeSessionConfig(r.URL.Query().Get("config"))
	if err != nil {
		log.Printf("ignoring malformed session config: %v", err)
	} else if sc.APIKey != "" {
		apiKey = sc.APIKey
	}

	digest := sha256.Sum256([]byte(apiKey))
	key := hex.EncodeToString(digest[:8])

	a.mu.Lock()
	defer a.mu.Unlock()
	if server, ok := a.servers[key]; ok {
		return server
	}
	server := newMCPServer(newToolset(a.cfg, apiKey))
	a.servers[key] = server
	return server
}

// handler builds the HTTP mux. The streamable handler manages session
// ids (Mcp-Session-Id header, DELETE teardown); the SSE handler serves
// the event stream and its companion POST message endpoint.
func (a *httpAdapter) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.handleHealth)
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(a.serverFor, nil))
	mux.Handle("/sse", mcp.NewSSEHandler(a.serverFor, nil))
	return withCORS(withRequestLog(mux))
}

// handleHealth reports a fixed status document.
func (a *httpAdapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": serverName,
		"version": serverVersion,
	}); err != nil {
		log.Printf("encode health response: %v", err)
	}
}

// withCORS lets browser-based MCP clients reach the HTTP endpoints.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id, Mcp-Protocol-Version, Last-Event-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestLog tags each request with a short id for correlation.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		log.Printf("[%s] %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// runHTTP serves the MCP HTTP surface until ctx ends.
func runHTTP(ctx context.Context, cfg Config) error {
	adapter := newHTTPAdapter(cfg)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: adapter.handler()}

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving MCP over HTTP on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}
