package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/cache"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/repository/sqlite"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/config"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/services"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/logger"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type env struct {
	repo      *sqlite.SQLiteRepository
	pages     ports.PageCache
	log       *zap.Logger
	snapshots *services.SnapshotService
	reconcile *services.ReconcileService
	closers   []func() error
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

func setup(ctx context.Context) (*env, error) {
	cfg := config.Load()
	log, err := logger.New(logger.Config{Environment: cfg.AppEnv, LogLevel: cfg.LogLevel, ServiceName: "linkpage-cli"})
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	e := &env{repo: repo, log: log, pages: cache.Noop{}, closers: []func() error{repo.Close}}

	// a shared cache must forget pages the CLI rewrites
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.PageCacheTTL, log)
		if err != nil {
			log.Warn("redis unavailable, cached pages expire on their own", zap.Error(err))
		} else {
			e.pages = rc
			e.closers = append(e.closers, rc.Close)
		}
	}

	e.snapshots = services.NewSnapshotService(repo, e.pages, log)
	e.reconcile = services.NewReconcileService(repo, e.pages, log)
	return e, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "linkpage",
		Short:        "Maintenance commands for link pages",
		SilenceUsage: true,
	}
	root.AddCommand(newExportCmd(), newImportCmd(), newReconcileCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export <username>",
		Short: "Write a profile with its links and blocks to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			snap, err := e.snapshots.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
				if !cmd.Flags().Changed("format") {
					format = formatFromPath(out)
				}
			}
			return encodeSnapshot(w, format, snap)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace an owner's profile, links and blocks from an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if format == "" {
				format = formatFromPath(args[0])
			}
			snap, err := decodeSnapshot(f, format)
			if err != nil {
				return err
			}

			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.snapshots.Import(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %d links, %d blocks\n",
				snap.Profile.Username, len(snap.Links), len(snap.Blocks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json or yaml (default from extension)")
	return cmd
}

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Repair duplicate link and block positions for every owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			n, err := e.reconcile.ReconcileAll(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Repaired %d collections\n", n)
			return err
		},
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func encodeSnapshot(w io.Writer, format string, snap *domain.Snapshot) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func decodeSnapshot(r io.Reader, format string) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var err error
	switch format {
	case "json":
		err = json.NewDecoder(r).Decode(&snap)
	case "yaml":
		err = yaml.NewDecoder(r).Decode(&snap)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", format, err)
	}
	return &snap, nil
}
