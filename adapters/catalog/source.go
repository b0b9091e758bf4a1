// Package catalog provides rate catalog sources.
// A source reads rates, EWA settings, optional services and system settings from
// a backing store and returns one validated snapshot.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/internal/config"
)

// Source loads a complete catalog snapshot
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Load reads the backing store and returns a validated snapshot
	Load(ctx context.Context) (*core.Snapshot, error)
}

// Closer is implemented by sources that hold connections
type Closer interface {
	Close() error
}

// Open builds the source selected by configuration
func Open(cfg config.CatalogConfig, logger *zap.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceHCL:
		return NewHCLSource(cfg.Path, logger), nil
	case config.SourcePostgres:
		return OpenPostgres(cfg.DSN, cfg.QueryTimeout, logger)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// LoadInto loads a snapshot and installs it in the holder
func LoadInto(ctx context.Context, src Source, holder *core.Holder) (*core.Snapshot, error) {
	snap, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	holder.Swap(snap)
	return snap, nil
}
