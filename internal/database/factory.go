package database

import (
	"fmt"

	"github.com/hilyafadhilah/tubes-basdat/internal/database/mysql"
	"github.com/hilyafadhilah/tubes-basdat/internal/database/postgres"
	"github.com/hilyafadhilah/tubes-basdat/internal/database/sqlite"
	"go.uber.org/zap"
)

func NewLoader(provider string, logger *zap.Logger) (Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch provider {
	case "mysql", "mariadb":
		return mysql.New(logger), nil
	case "postgresql", "postgres":
		return postgres.New(logger), nil
	case "sqlite", "sqlite3":
		return sqlite.New(logger), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}
