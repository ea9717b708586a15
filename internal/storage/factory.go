package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adaptivelearn/levelbook/internal/storage/in_mem"
	"github.com/adaptivelearn/levelbook/internal/storage/pg"
	pkgserver "github.com/adaptivelearn/levelbook/pkg/server"
)

// Config selects the backend at process start. A set DatabaseURL means the
// relational store; otherwise everything lives in process memory and is lost
// on restart.
type Config struct {
	DatabaseURL string
}

func (c Config) Type() Type {
	if c.DatabaseURL != "" {
		return PG
	}
	return InMem
}

// New constructs the configured backend plus a health checker probing it.
// The instance is built once at startup and handed to the orchestrator and
// routers explicitly; there is no package-level singleton.
func New(ctx context.Context, cfg Config) (Storage, pkgserver.HealthChecker, error) {
	switch cfg.Type() {
	case PG:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		slog.Info("Using PostgreSQL storage")
		return pg.NewStore(pool), pool, nil
	default:
		slog.Info("DATABASE_URL not set, using in-memory storage")
		return in_mem.NewStore(), pkgserver.NewOkHealthChecker(), nil
	}
}
