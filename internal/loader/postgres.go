package loader

import (
	"fmt"
	"strings"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/lib/pq"
)

// Postgres emits COPY statements in CSV mode. COPY only accepts single-byte
// delimiter, quote and escape characters and newline-terminated rows.
type Postgres struct{}

func (Postgres) Name() string { return "postgresql" }

func (Postgres) Directive(enc codec.Encoder, table, path string, columns []string) (string, error) {
	opts, err := copyOptions(enc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("COPY %s (%s)\nFROM %s\nWITH (%s);\n",
		table, strings.Join(columns, ", "), pq.QuoteLiteral(path), opts), nil
}

// StdinDirective is the form executed over a connection, streaming the
// file contents instead of naming a server-side path.
func (Postgres) StdinDirective(enc codec.Encoder, table string, columns []string) (string, error) {
	opts, err := copyOptions(enc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (%s)", table, strings.Join(columns, ", "), opts), nil
}

func copyOptions(enc codec.Encoder) (string, error) {
	for name, v := range map[string]string{
		"delimiter": enc.Delimiter,
		"quote":     enc.QuoteChar,
		"escape":    enc.EscapeChar,
	} {
		if len(v) != 1 {
			return "", fmt.Errorf("postgresql COPY requires a single-byte %s, got %q", name, v)
		}
	}
	if enc.LineTerminator != "\n" && enc.LineTerminator != "\r\n" {
		return "", fmt.Errorf("postgresql COPY cannot read rows terminated by %q", enc.LineTerminator)
	}
	return fmt.Sprintf("FORMAT csv, HEADER true, DELIMITER %s, QUOTE %s, ESCAPE %s",
		pq.QuoteLiteral(enc.Delimiter), pq.QuoteLiteral(enc.QuoteChar), pq.QuoteLiteral(enc.EscapeChar)), nil
}
