package loader

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
)

// Dialect renders the bulk-load directive for one generated table file.
type Dialect interface {
	Name() string
	Directive(enc codec.Encoder, table, path string, columns []string) (string, error)
}

func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "mariadb", "":
		return MySQL{}, nil
	case "postgresql", "postgres":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("unsupported loader dialect: %s. Supported dialects: [mysql postgresql]", name)
	}
}

// MySQL emits LOAD DATA LOCAL INFILE statements.
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

// EscapeLiteral escapes the characters that are significant inside a MySQL
// single-quoted string literal.
func EscapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func (MySQL) Directive(enc codec.Encoder, table, path string, columns []string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "LOAD DATA LOCAL INFILE '%s'\n", EscapeLiteral(path))
	fmt.Fprintf(&sb, "INTO TABLE %s\n", table)
	fmt.Fprintf(&sb, "FIELDS TERMINATED BY '%s'\n", EscapeLiteral(enc.Delimiter))
	fmt.Fprintf(&sb, "OPTIONALLY ENCLOSED BY '%s' ESCAPED BY '%s'\n", EscapeLiteral(enc.QuoteChar), EscapeLiteral(enc.EscapeChar))
	fmt.Fprintf(&sb, "LINES TERMINATED BY 0x%s\n", hex.EncodeToString([]byte(enc.LineTerminator)))
	sb.WriteString("IGNORE 1 LINES\n")
	fmt.Fprintf(&sb, "(%s);\n", strings.Join(columns, ", "))
	return sb.String(), nil
}
