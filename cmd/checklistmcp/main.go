// Command checklistmcp runs the checklist MCP server.
//
// It exposes six tools for managing hierarchical task checklists and
// work-info snapshots over either stdio (line-delimited JSON-RPC 2.0) or a
// Streamable HTTP endpoint, entirely in-memory: nothing here persists across
// a process restart.
//
// Environment variables (all optional, see internal/config):
//
//	CHECKLISTMCP_TRANSPORT      - "stdio" (default) or "http"
//	CHECKLISTMCP_PORT           - HTTP listen port (default: 8787)
//	CHECKLISTMCP_HOST           - HTTP listen address (default: 0.0.0.0)
//	CHECKLISTMCP_CORS_ORIGINS   - comma-separated allowed origins (default: *)
//	CHECKLISTMCP_LOG_LEVEL      - debug, info, warn, error (default: info)
//	CHECKLISTMCP_MAX_SESSIONS   - per-namespace session capacity (default: 100)
//	CHECKLISTMCP_MAX_NAMESPACES - namespace registry capacity (default: 32)
//	CHECKLISTMCP_CONFIG         - explicit TOML config file path
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/checklistmcp/checklistmcp/internal/config"
	"github.com/checklistmcp/checklistmcp/internal/content"
	"github.com/checklistmcp/checklistmcp/internal/mcp"
	"github.com/checklistmcp/checklistmcp/internal/store"
	"github.com/checklistmcp/checklistmcp/internal/tools/checklist"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "checklistmcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := ""
	if len(os.Args) > 1 && os.Args[1] == "info" {
		return runInfo()
	}
	for i, a := range os.Args[1:] {
		if a == "--config" && i+2 < len(os.Args) {
			configPath = os.Args[i+2]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	logger.Info("starting checklistmcp",
		"version", version,
		"transport", cfg.Transport.Mode,
		"max_namespaces", cfg.Engine.MaxNamespaces,
		"max_sessions", cfg.Engine.MaxSessions,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := buildRegistry(cfg)

	server := mcp.NewServer(registry, mcp.ServerInfo{
		Name:    cfg.Server.Name,
		Version: version,
	}, logger)

	switch cfg.Transport.Mode {
	case "http":
		return runHTTP(ctx, server, cfg, logger)
	default:
		return server.Run(ctx)
	}
}

// buildRegistry wires the in-memory checklist engine into the six tools,
// plus the usage prompt and reference resources.
func buildRegistry(cfg *config.Config) *mcp.Registry {
	registry := mcp.NewRegistry()

	engine := store.NewRegistry(cfg.Engine.MaxNamespaces, cfg.Engine.MaxSessions)
	workIDs := store.NewWorkIDGenerator()

	registry.Register(checklist.NewUpdateTasks(engine))
	registry.Register(checklist.NewMarkTaskAsDone(engine))
	registry.Register(checklist.NewGetAllTasks(engine))
	registry.Register(checklist.NewSaveCurrentWorkInfo(engine, workIDs))
	registry.Register(checklist.NewGetRecentWorksInfo(engine))
	registry.Register(checklist.NewGetWorkByID(engine))

	registry.RegisterPrompt(&content.StartChecklistPrompt{})

	registry.RegisterResource(&content.DataModelResource{})
	registry.RegisterResource(&content.ToolReferenceResource{})

	return registry
}

func runHTTP(ctx context.Context, server *mcp.Server, cfg *config.Config, logger *slog.Logger) error {
	httpServer := mcp.NewHTTPServer(server, cfg.Transport.CORSOrigins, logger)
	addr := cfg.Transport.Host + ":" + cfg.Transport.Port

	srv := &http.Server{
		Addr:    addr,
		Handler: httpServer.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("checklistmcp HTTP server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
