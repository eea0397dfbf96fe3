package source

import (
	"context"
	"fmt"

	"datajoin/core/storage"
	"datajoin/core/utils"

	"gorm.io/gorm"
)

// Record is one loosely typed row or document of a snapshot. JSON
// snapshots decode straight into it; database snapshots are scanned
// into it column by column.
type Record = map[string]any

// KeyField builds a join key function extracting the named field from a
// record, coerced to string. A missing or nil field yields the empty
// string; the join treats that as an ordinary key, so two keyless
// records surface as a duplicate-key error rather than vanishing.
func KeyField(name string) func(Record) string {
	return func(r Record) string {
		v, ok := r[name]
		if !ok || v == nil {
			return ""
		}
		return utils.ToString(v)
	}
}

// Source supplies data snapshots for join passes.
type Source interface {
	// Name identifies the source in logs, cache keys, and config.
	Name() string

	// Load fetches the current snapshot in a defined order.
	Load(ctx context.Context) ([]Record, error)
}

// Kind selects a source implementation.
const (
	KindFile     = "file"
	KindObject   = "object"
	KindDatabase = "database"
)

// Deps carries the shared clients a source may need. Fields are only
// required for the kinds that use them.
type Deps struct {
	// Storage backs object sources.
	Storage storage.Client
	// Bucket is the bucket object sources read from.
	Bucket string
	// DB backs database sources.
	DB *gorm.DB
}

// New builds a Source from configuration.
func New(cfg Config, deps Deps) (Source, error) {
	switch cfg.Kind {
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source %q: path is required", cfg.Name)
		}
		return NewFileSource(cfg.Name, cfg.Path), nil
	case KindObject:
		if deps.Storage == nil {
			return nil, fmt.Errorf("object source %q: no storage client configured", cfg.Name)
		}
		if cfg.Object == "" {
			return nil, fmt.Errorf("object source %q: object is required", cfg.Name)
		}
		return NewObjectSource(cfg.Name, deps.Storage, deps.Bucket, cfg.Object), nil
	case KindDatabase:
		if deps.DB == nil {
			return nil, fmt.Errorf("database source %q: no database configured", cfg.Name)
		}
		if cfg.Query == "" {
			return nil, fmt.Errorf("database source %q: query is required", cfg.Name)
		}
		return NewDatabaseSource(cfg.Name, deps.DB, cfg.Query), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
