package loader

import (
	"strings"
	"testing"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDirectiveDefaultEncoding(t *testing.T) {
	got, err := MySQL{}.Directive(codec.Default(), "penduduk", "result/penduduk.csv", []string{"nik", "nama_depan"})
	require.NoError(t, err)

	want := "LOAD DATA LOCAL INFILE 'result/penduduk.csv'\n" +
		"INTO TABLE penduduk\n" +
		"FIELDS TERMINATED BY ','\n" +
		"OPTIONALLY ENCLOSED BY '\"' ESCAPED BY '\\\\'\n" +
		"LINES TERMINATED BY 0x0a\n" +
		"IGNORE 1 LINES\n" +
		"(nik, nama_depan);\n"
	assert.Equal(t, want, got)
}

func TestMySQLDirectiveEscapesWindowsPath(t *testing.T) {
	got, err := MySQL{}.Directive(codec.Default(), "kota", `result\kota.csv`, []string{"id"})
	require.NoError(t, err)
	assert.Contains(t, got, `INFILE 'result\\kota.csv'`)
}

func TestMySQLDirectiveFollowsEncoder(t *testing.T) {
	encoders := []codec.Encoder{
		codec.Default(),
		{Delimiter: ";", QuoteChar: `"`, EscapeChar: `"`, LineTerminator: "\r\n"},
		{Delimiter: "|", QuoteChar: `'`, EscapeChar: `\`, LineTerminator: "\n"},
		{Delimiter: "\t", QuoteChar: "~", EscapeChar: "^", LineTerminator: "\x1e"},
	}

	for _, enc := range encoders {
		got, err := MySQL{}.Directive(enc, "batch", "result/batch.csv", []string{"id"})
		require.NoError(t, err)

		assert.Contains(t, got, "FIELDS TERMINATED BY '"+EscapeLiteral(enc.Delimiter)+"'\n")
		assert.Contains(t, got, "OPTIONALLY ENCLOSED BY '"+EscapeLiteral(enc.QuoteChar)+"'")
		assert.Contains(t, got, "ESCAPED BY '"+EscapeLiteral(enc.EscapeChar)+"'\n")

		if !strings.ContainsAny(enc.Delimiter+enc.QuoteChar+enc.EscapeChar, `\'`) {
			assert.Contains(t, got, "TERMINATED BY '"+enc.Delimiter+"'")
			assert.Contains(t, got, "ENCLOSED BY '"+enc.QuoteChar+"'")
			assert.Contains(t, got, "ESCAPED BY '"+enc.EscapeChar+"'")
		}
	}
}

func TestMySQLDirectiveLineTerminatorHex(t *testing.T) {
	enc := codec.Default()
	enc.LineTerminator = "\r\n"

	got, err := MySQL{}.Directive(enc, "faskes", "faskes.csv", []string{"id"})
	require.NoError(t, err)
	assert.Contains(t, got, "LINES TERMINATED BY 0x0d0a\n")
}

func TestEscapeLiteral(t *testing.T) {
	assert.Equal(t, `\\`, EscapeLiteral(`\`))
	assert.Equal(t, `\'`, EscapeLiteral(`'`))
	assert.Equal(t, `,`, EscapeLiteral(`,`))
}

func TestPostgresDirective(t *testing.T) {
	got, err := Postgres{}.Directive(codec.Default(), "vaksin", "/tmp/vaksin.csv", []string{"id", "produsen", "nama"})
	require.NoError(t, err)

	assert.Contains(t, got, "COPY vaksin (id, produsen, nama)\n")
	assert.Contains(t, got, "FROM '/tmp/vaksin.csv'\n")
	assert.Contains(t, got, `DELIMITER ',', QUOTE '"', ESCAPE  E'\\'`)
}

func TestPostgresRejectsUnsupportedEncoding(t *testing.T) {
	enc := codec.Default()
	enc.Delimiter = "::"
	_, err := Postgres{}.Directive(enc, "t", "t.csv", []string{"id"})
	assert.Error(t, err)

	enc = codec.Default()
	enc.LineTerminator = "\x1e"
	_, err = Postgres{}.StdinDirective(enc, "t", []string{"id"})
	assert.Error(t, err)
}

func TestPostgresStdinDirective(t *testing.T) {
	got, err := Postgres{}.StdinDirective(codec.Default(), "disuntik", []string{"id_batch", "nik"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "COPY disuntik (id_batch, nik) FROM STDIN WITH (FORMAT csv"))
}

func TestByName(t *testing.T) {
	d, err := ByName("MySQL")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = ByName("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgresql", d.Name())

	_, err = ByName("oracle")
	assert.Error(t, err)
}
