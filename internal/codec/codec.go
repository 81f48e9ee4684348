package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the textual form of every date written to a table file.
const DateLayout = "2006-01-02"

var (
	ErrEncodingContract = errors.New("encoded field breaks the row grammar")
	ErrMalformedField   = errors.New("malformed quoted field")
)

// Encoder owns the grammar of every generated table file. The loader
// directives are derived from the same values, so a change here changes both.
type Encoder struct {
	Delimiter      string `json:"delimiter" mapstructure:"delimiter" yaml:"delimiter"`
	QuoteChar      string `json:"quote" mapstructure:"quote" yaml:"quote"`
	EscapeChar     string `json:"escape" mapstructure:"escape" yaml:"escape"`
	LineTerminator string `json:"line_terminator" mapstructure:"line_terminator" yaml:"line_terminator"`
}

// MarshalYAML double-quotes every setting. Block scalars would lose a
// terminator that is only whitespace.
func (e Encoder) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, kv := range [][2]string{
		{"delimiter", e.Delimiter},
		{"quote", e.QuoteChar},
		{"escape", e.EscapeChar},
		{"line_terminator", e.LineTerminator},
	} {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: kv[0]},
			&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: kv[1]},
		)
	}
	return node, nil
}

func Default() Encoder {
	return Encoder{
		Delimiter:      ",",
		QuoteChar:      `"`,
		EscapeChar:     `\`,
		LineTerminator: "\n",
	}
}

func (e Encoder) Validate() error {
	switch {
	case e.Delimiter == "":
		return fmt.Errorf("delimiter cannot be empty")
	case e.QuoteChar == "":
		return fmt.Errorf("quote cannot be empty")
	case e.EscapeChar == "":
		return fmt.Errorf("escape cannot be empty")
	case e.LineTerminator == "":
		return fmt.Errorf("line terminator cannot be empty")
	case e.Delimiter == e.QuoteChar:
		return fmt.Errorf("delimiter and quote must differ")
	case strings.Contains(e.LineTerminator, e.Delimiter) || strings.Contains(e.Delimiter, e.LineTerminator):
		return fmt.Errorf("delimiter and line terminator overlap")
	}
	return nil
}

// Quote wraps v in the quote character. Embedded quote characters are
// prefixed with the escape character; nothing else is escaped.
func (e Encoder) Quote(v string) string {
	return e.QuoteChar + strings.ReplaceAll(v, e.QuoteChar, e.EscapeChar+e.QuoteChar) + e.QuoteChar
}

// Unquote reverses Quote.
func (e Encoder) Unquote(s string) (string, error) {
	if len(s) < 2*len(e.QuoteChar) || !strings.HasPrefix(s, e.QuoteChar) || !strings.HasSuffix(s, e.QuoteChar) {
		return "", fmt.Errorf("%w: %q is not enclosed by %q", ErrMalformedField, s, e.QuoteChar)
	}
	values, err := e.Split(s)
	if err != nil {
		return "", err
	}
	if len(values) != 1 {
		return "", fmt.Errorf("%w: %q holds %d fields", ErrMalformedField, s, len(values))
	}
	return values[0], nil
}

// Field is one scalar of a record together with its quoting decision.
type Field struct {
	Value  string
	Quoted bool
}

func Int(v int64) Field { return Field{Value: strconv.FormatInt(v, 10)} }

func Text(v string) Field { return Field{Value: v, Quoted: true} }

func Date(t time.Time) Field { return Text(t.Format(DateLayout)) }

// Bool is written bare as 1 or 0.
func Bool(v bool) Field {
	if v {
		return Field{Value: "1"}
	}
	return Field{Value: "0"}
}

func (e Encoder) encode(f Field) (string, error) {
	if !f.Quoted {
		if strings.Contains(f.Value, e.Delimiter) || strings.Contains(f.Value, e.LineTerminator) || strings.Contains(f.Value, e.QuoteChar) {
			return "", fmt.Errorf("%w: bare value %q", ErrEncodingContract, f.Value)
		}
		return f.Value, nil
	}
	if strings.Contains(f.Value, e.Delimiter) || strings.Contains(f.Value, e.LineTerminator) {
		return "", fmt.Errorf("%w: value %q contains the delimiter or line terminator", ErrEncodingContract, f.Value)
	}
	// A raw escape character would be read back as an escape sequence.
	if e.EscapeChar != e.QuoteChar && strings.Contains(f.Value, e.EscapeChar) {
		return "", fmt.Errorf("%w: value %q contains the escape character", ErrEncodingContract, f.Value)
	}
	return e.Quote(f.Value), nil
}

// Row renders one record line, terminator included.
func (e Encoder) Row(fields []Field) (string, error) {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(e.Delimiter)
		}
		s, err := e.encode(f)
		if err != nil {
			return "", fmt.Errorf("field %d: %w", i, err)
		}
		sb.WriteString(s)
	}
	sb.WriteString(e.LineTerminator)
	return sb.String(), nil
}

func (e Encoder) Header(columns []string) string {
	return strings.Join(columns, e.Delimiter) + e.LineTerminator
}

// Split decodes a single line (without its terminator) into raw values.
func (e Encoder) Split(line string) ([]string, error) {
	var (
		values  []string
		current strings.Builder
		inQuote bool
		quoted  bool
	)
	escQuote := e.EscapeChar + e.QuoteChar

	for i := 0; i < len(line); {
		rest := line[i:]
		switch {
		case inQuote && rest == escQuote && e.EscapeChar != e.QuoteChar:
			// a value ending in the escape character
			current.WriteString(e.EscapeChar)
			inQuote = false
			i += len(escQuote)
		case inQuote && strings.HasPrefix(rest, escQuote):
			current.WriteString(e.QuoteChar)
			i += len(escQuote)
		case inQuote && strings.HasPrefix(rest, e.QuoteChar):
			inQuote = false
			i += len(e.QuoteChar)
			if i < len(line) && !strings.HasPrefix(line[i:], e.Delimiter) {
				return nil, fmt.Errorf("%w: data after closing quote at byte %d", ErrMalformedField, i)
			}
		case inQuote:
			current.WriteByte(line[i])
			i++
		case strings.HasPrefix(rest, e.Delimiter):
			values = append(values, current.String())
			current.Reset()
			quoted = false
			i += len(e.Delimiter)
		case strings.HasPrefix(rest, e.QuoteChar):
			if current.Len() > 0 || quoted {
				return nil, fmt.Errorf("%w: quote inside bare value at byte %d", ErrMalformedField, i)
			}
			inQuote = true
			quoted = true
			i += len(e.QuoteChar)
		default:
			current.WriteByte(line[i])
			i++
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", ErrMalformedField)
	}
	return append(values, current.String()), nil
}

// Lines splits file content on the line terminator, dropping the trailing
// empty element left by the final terminator.
func (e Encoder) Lines(content string) []string {
	lines := strings.Split(content, e.LineTerminator)
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
