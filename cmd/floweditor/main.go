// Package main provides the FlowEditor CLI application
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nexusflow/floweditor/internal/adapters/flowapi"
	"github.com/nexusflow/floweditor/internal/adapters/repository/memory"
	"github.com/nexusflow/floweditor/internal/adapters/repository/postgres"
	"github.com/nexusflow/floweditor/internal/adapters/repository/sqlite"
	"github.com/nexusflow/floweditor/internal/core/draft"
	"github.com/nexusflow/floweditor/internal/infrastructure/config"
	"github.com/nexusflow/floweditor/pkg/floweditor"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("FlowEditor %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	saver, closeSaver, err := newDraftSaver(ctx, cfg.Drafts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "drafts: %v\n", err)
		os.Exit(1)
	}
	defer closeSaver()

	client := flowapi.NewClient(cfg.Service.BaseURL,
		flowapi.WithAPIKey(cfg.Service.APIKey),
		flowapi.WithTimeout(cfg.Service.RequestTimeout),
	)
	editor := floweditor.NewEditor(client,
		floweditor.WithDraftSaver(saver),
		floweditor.WithLogger(logger),
	)

	if len(os.Args) > 1 {
		if err := runCommand(ctx, client, editor, os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("FlowEditor - visual agent flow composition")
	fmt.Println("Commands: version, flows, show <id>, capabilities")
}

// newLogger builds a production logger at the configured level. Unknown
// level strings keep the zap default.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newDraftSaver selects the draft store backend from configuration. The
// returned func releases the backing connection, if any.
func newDraftSaver(ctx context.Context, cfg config.DraftConfig) (draft.Saver, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		return memory.NewDraftSaver(nil), func() {}, nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite draft store: %w", err)
		}
		saver := sqlite.NewDraftSaver(db, nil)
		if err := saver.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return saver, func() { _ = db.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres draft store: %w", err)
		}
		saver := postgres.NewDraftSaver(pool, nil)
		if err := saver.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return saver, func() { pool.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft backend %q", cfg.Backend)
	}
}

func runCommand(ctx context.Context, client *flowapi.Client, editor *floweditor.Editor, cmd string, args []string) error {
	switch cmd {
	case "flows":
		flows, err := client.ListFlows(ctx)
		if err != nil {
			return err
		}
		for _, f := range flows {
			fmt.Printf("%s\t%s\t%s\n", f.Ref(), f.Name, f.Description)
		}
		return nil
	case "show":
		if len(args) < 1 {
			return fmt.Errorf("usage: floweditor show <flow-id>")
		}
		if err := editor.Load(ctx, args[0]); err != nil {
			return err
		}
		out, err := json.MarshalIndent(editor.BuildConfig(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	case "capabilities":
		caps, err := client.ListCapabilities(ctx)
		if err != nil {
			return err
		}
		for _, c := range caps {
			fmt.Printf("%s\t%s\t%s\n", c.Type, c.Name, c.Description)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
