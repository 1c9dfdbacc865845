package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
)

// DefaultHistoryDSN is used when no history DSN is configured.
const DefaultHistoryDSN = "file:genesis_history.db"

// CompileRun is one published genesis document.
type CompileRun struct {
	bun.BaseModel `bun:"table:compile_runs,alias:cr"`

	ID             string    `bun:"id,pk"`
	ChainID        string    `bun:"chain_id,notnull"`
	Validators     int       `bun:"validators,notnull"`
	TotalStakeWei  string    `bun:"total_stake_wei,notnull"`
	DocumentSHA256 string    `bun:"document_sha256,notnull"`
	OutputPath     string    `bun:"output_path"`
	ArchivePath    string    `bun:"archive_path"`
	BlobKey        string    `bun:"blob_key"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

// History stores CompileRun records in SQLite or Postgres.
type History struct {
	db *bun.DB
}

// OpenHistory connects to dsn and creates the schema if needed. DSNs starting
// with postgres:// or postgresql:// use Postgres, anything else is a SQLite
// path or file: URI.
func OpenHistory(ctx context.Context, dsn string) (*History, error) {
	if dsn == "" {
		dsn = DefaultHistoryDSN
	}

	var db *bun.DB
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		if path := sqlitePath(dsn); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, stacktrace.Wrap(fmt.Errorf("failed to create history directory: %w", err))
			}
		}
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, stacktrace.Wrap(fmt.Errorf("failed to open SQLite database: %w", err))
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	h := &History{db: db}
	if err := h.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) createTables(ctx context.Context) error {
	if _, err := h.db.NewCreateTable().
		Model((*CompileRun)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return stacktrace.Wrap(fmt.Errorf("failed to create compile_runs table: %w", err))
	}
	if _, err := h.db.NewCreateIndex().
		Table("compile_runs").
		IfNotExists().
		Index("idx_compile_runs_created_at").
		Column("created_at").
		Exec(ctx); err != nil {
		return stacktrace.Wrap(fmt.Errorf("failed to create compile_runs index: %w", err))
	}
	return nil
}

// Record stores run, assigning an id if it has none.
func (h *History) Record(ctx context.Context, run *CompileRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if _, err := h.db.NewInsert().Model(run).Exec(ctx); err != nil {
		return stacktrace.Wrap(fmt.Errorf("failed to record compile run: %w", err))
	}
	return nil
}

// Recent returns up to limit runs, newest first, optionally for one chain.
func (h *History) Recent(ctx context.Context, chainID string, limit int) ([]CompileRun, error) {
	var runs []CompileRun
	q := h.db.NewSelect().Model(&runs).Order("created_at DESC", "id").Limit(limit)
	if chainID != "" {
		q = q.Where("chain_id = ?", chainID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, stacktrace.Wrap(fmt.Errorf("failed to list compile runs: %w", err))
	}
	return runs, nil
}

// Get returns the run with the given id.
func (h *History) Get(ctx context.Context, id string) (*CompileRun, error) {
	run := new(CompileRun)
	if err := h.db.NewSelect().Model(run).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, stacktrace.Wrap(err)
	}
	return run, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}
