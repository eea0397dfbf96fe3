package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datajoin/core/binder"
	"datajoin/core/config"
	"datajoin/core/database"
	"datajoin/core/join"
	"datajoin/core/logger"
	"datajoin/core/source"
	"datajoin/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the watch command
	watchInterval time.Duration
	watchOnce     bool
)

// watchCmd polls the configured source and reconciles each snapshot.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the configured source and join each snapshot against the last",
	Long: `Watch loads the configured snapshot source on an interval and joins each
snapshot against the previous pass, logging which keys enter, update, and
exit. The bound set persists across passes, so a key that disappears and
returns is logged as a fresh entry, not a revival.

Examples:
  # Poll the configured source every 10 seconds
  datajoin watch

  # Custom interval
  datajoin watch --interval 2s

  # One pass and exit (useful in cron-style setups)
  datajoin watch --once`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (default: source.interval_seconds config)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Run a single pass and exit")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	deps, err := buildSourceDeps(cfg, l)
	if err != nil {
		return err
	}

	src, err := source.New(cfg.Source, deps)
	if err != nil {
		return fmt.Errorf("failed to build source: %w", err)
	}

	interval := watchInterval
	if interval == 0 {
		interval = time.Duration(cfg.Source.IntervalSeconds) * time.Second
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}

	// The element handle here is just the pass number that created the
	// binding; enough to show identity persisting in the logs.
	pass := 0
	b := binder.New(source.KeyField(cfg.Source.KeyField), binder.Hooks[string, source.Record, int]{
		Create: func(key string, _ source.Record) (int, error) {
			l.Info("Key entered", zap.String("key", key), zap.Int("since_pass", pass))
			return pass, nil
		},
		Remove: func(created int) error {
			l.Info("Key exited", zap.Int("entered_at_pass", created))
			return nil
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := source.NewCache()
	ttl := time.Duration(cfg.Source.CacheTTLSeconds) * time.Second

	l.Info("Watching source",
		zap.String("source", src.Name()),
		zap.String("key_field", cfg.Source.KeyField),
		zap.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		pass++
		if err := watchPass(ctx, l, b, cache, src, ttl, pass); err != nil {
			// A failed pass leaves the bound set untouched; keep polling.
			l.Error("Pass failed", zap.Int("pass", pass), zap.Error(err))
		}

		if watchOnce {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Info("Shutting down watch")
			return nil
		case <-ticker.C:
		}
	}
}

// watchPass loads one snapshot and applies it to the binder.
func watchPass(ctx context.Context, l *zap.Logger, b *binder.Binder[string, source.Record, int], cache *source.Cache, src source.Source, ttl time.Duration, pass int) error {
	records, err := cache.Load(ctx, src, ttl)
	if err != nil {
		return err
	}

	res, err := b.Apply(records)
	if err != nil {
		return err
	}

	summary := join.PlanOf(res).Summary
	l.Info("Pass applied",
		zap.Int("pass", pass),
		zap.Int("bound", b.Len()),
		zap.Int("entering", summary.Entering),
		zap.Int("updating", summary.Updating),
		zap.Int("exiting", summary.Exiting),
	)
	return nil
}

// buildSourceDeps connects the clients the configured source kind needs.
func buildSourceDeps(cfg *config.Config, l *zap.Logger) (source.Deps, error) {
	deps := source.Deps{Bucket: cfg.Storage.Bucket}

	switch cfg.Source.Kind {
	case source.KindObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return source.Deps{}, fmt.Errorf("failed to create storage client: %w", err)
		}
		deps.Storage = client
	case source.KindDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return source.Deps{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		deps.DB = db
		l.Info("Connected to database", zap.String("name", cfg.Database.Name))
	}

	return deps, nil
}
