package common

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	commentRegex = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex  = regexp.MustCompile(`'(?:[^'\\]|\\.|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
)

// ParseSQLStatements splits a script on semicolons that are not inside a
// string literal. Line comments and empty statements are dropped.
func ParseSQLStatements(sql string) []string {
	sql = commentRegex.ReplaceAllString(sql, "")

	stringPositions := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(sql, -1) {
		for i := match[0]; i < match[1]; i++ {
			stringPositions[i] = true
		}
	}

	statements := make([]string, 0, strings.Count(sql, ";")+1)
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" && !strings.HasPrefix(stmt, "/*") {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i, char := range sql {
		if char == ';' && !stringPositions[i] {
			flush()
			continue
		}
		current.WriteRune(char)
	}
	flush()

	return statements
}

// ColumnDefs renders "a TEXT, b TEXT" for a table whose values are loaded
// as text.
func ColumnDefs(columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s TEXT", col)
	}
	return strings.Join(defs, ", ")
}
