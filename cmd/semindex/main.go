package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/scholex/semindex/internal/chat"
	"github.com/scholex/semindex/internal/config"
	"github.com/scholex/semindex/internal/embedder"
	"github.com/scholex/semindex/internal/extractor"
	"github.com/scholex/semindex/internal/indexer"
	"github.com/scholex/semindex/internal/llm"
	"github.com/scholex/semindex/internal/mcp"
	"github.com/scholex/semindex/internal/searcher"
	"github.com/scholex/semindex/internal/source"
	"github.com/scholex/semindex/internal/store"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "semindex.yaml", "path to yaml config")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("semindex MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", store.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", store.DriverName)
		os.Exit(0)
	}

	// Log to stderr; stdout is reserved for the MCP protocol
	log.SetOutput(os.Stderr)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	log.Printf("semindex MCP server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", store.BuildMode, store.DriverName)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	server, err := buildServer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}

// buildServer constructs every dependency explicitly. Credential
// resolution happens here so a missing key fails at startup, not on the
// first tool call.
func buildServer(cfg *config.AppConfig, logger *slog.Logger) (*mcp.Server, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolving db path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	emb, err := embedder.New(embedder.Config{
		Provider: cfg.Embedding.Provider,
		APIKey:   cfg.EmbeddingAPIKey(),
		BaseURL:  cfg.Embedding.BaseURL,
		Model:    cfg.Embedding.Model,
		Timeout:  cfg.EmbeddingTimeout(),
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	chatClient, err := llm.New(llm.Config{
		Provider: cfg.Chat.Provider,
		APIKey:   cfg.ChatAPIKey(),
		BaseURL:  cfg.Chat.BaseURL,
		Model:    cfg.Chat.Model,
		Timeout:  cfg.ChatTimeout(),
	})
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("initializing chat client: %w", err)
	}

	catalog, err := source.LoadJSONCatalog(cfg.Catalog.ExportPath)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	files := source.NewDirFileReader(cfg.Catalog.FilesRoot)
	ext := extractor.New(files, logger)
	srch := searcher.New(st, emb, logger)
	ix := indexer.New(catalog, ext, emb, st, logger)
	orch := chat.New(srch, chatClient, chat.DefaultOptions(), logger)

	return mcp.NewServer(st, srch, ix, orch), nil
}
