package postgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hilyafadhilah/tubes-basdat/internal/database/common"
	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Adapter struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func New(logger *zap.Logger) *Adapter {
	return &Adapter{logger: logger}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("not connected")
	}
	return p.pool.Ping(ctx)
}

func (p *Adapter) Exec(ctx context.Context, script string) error {
	if p.pool == nil {
		return fmt.Errorf("not connected")
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range common.ParseSQLStatements(script) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", stmt, err)
		}
	}
	return tx.Commit(ctx)
}

// Load streams each table file through COPY ... FROM STDIN. All tables are
// copied in one transaction.
func (p *Adapter) Load(ctx context.Context, m *writer.Manifest) (map[string]int64, error) {
	if p.pool == nil {
		return nil, fmt.Errorf("not connected")
	}

	statements := make([]string, len(m.Tables))
	for i, t := range m.Tables {
		stmt, err := loader.Postgres{}.StdinDirective(m.Encoding, t.Name, t.Columns)
		if err != nil {
			return nil, err
		}
		statements[i] = stmt
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	loaded := make(map[string]int64, len(m.Tables))
	for i, t := range m.Tables {
		rows, err := p.copyFile(ctx, tx, m.Path(t), statements[i])
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", t.Name, err)
		}
		p.logger.Debug("table copied", zap.String("table", t.Name), zap.Int64("rows", rows))
		loaded[t.Name] = rows
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit load: %w", err)
	}
	return loaded, nil
}

func (p *Adapter) copyFile(ctx context.Context, tx pgx.Tx, path, stmt string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	tag, err := tx.Conn().PgConn().CopyFrom(ctx, f, stmt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
