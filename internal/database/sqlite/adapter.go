package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/hilyafadhilah/tubes-basdat/internal/database/common"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Adapter loads table files into a SQLite database file. SQLite has no bulk
// file import over a connection, so every line is decoded and inserted.
type Adapter struct {
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	logger *zap.Logger
}

func New(logger *zap.Logger) *Adapter {
	return &Adapter{
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		logger: logger,
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("not connected")
	}
	return s.db.PingContext(ctx)
}

func (s *Adapter) Exec(ctx context.Context, script string) error {
	if s.db == nil {
		return fmt.Errorf("not connected")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range common.ParseSQLStatements(script) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", stmt, err)
		}
	}
	return tx.Commit()
}

// Load inserts every table of the manifest inside one transaction. Tables
// that do not exist yet are created with TEXT columns.
func (s *Adapter) Load(ctx context.Context, m *writer.Manifest) (map[string]int64, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := make(map[string]int64, len(m.Tables))
	for _, t := range m.Tables {
		createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, common.ColumnDefs(t.Columns))
		if _, err := tx.ExecContext(ctx, createSQL); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}

		n, err := s.insertFile(ctx, tx, m.Encoding, t, m.Path(t))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", t.Name, err)
		}
		s.logger.Debug("table inserted", zap.String("table", t.Name), zap.Int64("rows", n))
		loaded[t.Name] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit load: %w", err)
	}
	return loaded, nil
}

func (s *Adapter) insertFile(ctx context.Context, tx *sql.Tx, enc codec.Encoder, t writer.TableFile, path string) (int64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	lines := enc.Lines(string(content))
	if len(lines) == 0 {
		return 0, fmt.Errorf("missing header line")
	}

	var n int64
	for i, line := range lines[1:] {
		values, err := enc.Split(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", i+2, err)
		}
		if len(values) != len(t.Columns) {
			return n, fmt.Errorf("line %d: %d values for %d columns", i+2, len(values), len(t.Columns))
		}

		args := make([]interface{}, len(values))
		for j, v := range values {
			args[j] = v
		}

		query, qargs, err := s.qb.Insert(t.Name).Columns(t.Columns...).Values(args...).ToSql()
		if err != nil {
			return n, err
		}
		if _, err := tx.ExecContext(ctx, query, qargs...); err != nil {
			return n, fmt.Errorf("line %d: %w", i+2, err)
		}
		n++
	}
	return n, nil
}
