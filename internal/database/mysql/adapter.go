package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/hilyafadhilah/tubes-basdat/internal/database/common"
	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"go.uber.org/zap"
)

type Adapter struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(logger *zap.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB, logger *zap.Logger) *Adapter {
	return &Adapter{db: db, logger: logger}
}

// DSN converts a mysql:// URL into the driver's DSN form. Anything else is
// returned unchanged.
func DSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	replacer := strings.NewReplacer(
		"ssl-mode=REQUIRED", "tls=skip-verify",
		"ssl-mode=DISABLED", "tls=false",
		"ssl-mode=VERIFY_CA", "tls=true",
		"ssl-mode=VERIFY_IDENTITY", "tls=true",
		"sslmode=require", "tls=skip-verify",
		"sslmode=disable", "tls=false",
	)
	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, replacer.Replace(dbAndParams))
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", DSN(url))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("not connected")
	}
	return m.db.PingContext(ctx)
}

func (m *Adapter) Exec(ctx context.Context, script string) error {
	if m.db == nil {
		return fmt.Errorf("not connected")
	}
	for _, stmt := range common.ParseSQLStatements(script) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// Load runs one LOAD DATA LOCAL INFILE per table. Each file is registered
// with the driver for the duration of its statement only.
func (m *Adapter) Load(ctx context.Context, manifest *writer.Manifest) (map[string]int64, error) {
	if m.db == nil {
		return nil, fmt.Errorf("not connected")
	}

	loaded := make(map[string]int64, len(manifest.Tables))
	for _, t := range manifest.Tables {
		path := manifest.Path(t)
		directive, err := loader.MySQL{}.Directive(manifest.Encoding, t.Name, path, t.Columns)
		if err != nil {
			return loaded, err
		}

		driver.RegisterLocalFile(path)
		res, err := m.db.ExecContext(ctx, directive)
		driver.DeregisterLocalFile(path)
		if err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", t.Name, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return loaded, fmt.Errorf("failed to read row count of %s: %w", t.Name, err)
		}
		if rows != int64(t.Rows) {
			m.logger.Warn("row count mismatch",
				zap.String("table", t.Name),
				zap.Int("expected", t.Rows),
				zap.Int64("loaded", rows),
			)
		}
		loaded[t.Name] = rows
	}
	return loaded, nil
}
