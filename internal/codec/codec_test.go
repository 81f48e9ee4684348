package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestQuoteEscapesEmbeddedQuotes(t *testing.T) {
	enc := Default()
	assert.Equal(t, `"He said \"hi\""`, enc.Quote(`He said "hi"`))
	assert.Equal(t, `""`, enc.Quote(""))
	assert.Equal(t, `"plain"`, enc.Quote("plain"))
}

func TestQuoteWithDoublingEscape(t *testing.T) {
	enc := Encoder{Delimiter: ";", QuoteChar: `'`, EscapeChar: `'`, LineTerminator: "\r\n"}
	assert.Equal(t, `'it''s'`, enc.Quote("it's"))
}

func TestUnquoteRoundTrip(t *testing.T) {
	values := []string{
		"",
		"Budi",
		`"`,
		`""`,
		`He said "hi"`,
		`"leading and trailing"`,
		`a"b"c"d`,
		"Jl. Merdeka; no. 5",
		`C:\`,
		`\`,
		`a\"`,
		"x^",
		"^",
		"x^~",
	}
	encoders := []Encoder{
		Default(),
		{Delimiter: "|", QuoteChar: `'`, EscapeChar: `'`, LineTerminator: "\n"},
		{Delimiter: "\t", QuoteChar: "~", EscapeChar: "^", LineTerminator: "\r\n"},
	}

	for _, enc := range encoders {
		for _, v := range values {
			got, err := enc.Unquote(enc.Quote(v))
			require.NoError(t, err, "value %q with %+v", v, enc)
			assert.Equal(t, v, got)
		}
	}
}

func TestUnquoteRejectsBareValue(t *testing.T) {
	_, err := Default().Unquote("bare")
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestRowQuotesOnlyTextFields(t *testing.T) {
	enc := Default()
	birth := time.Date(1990, 4, 17, 0, 0, 0, 0, time.UTC)

	line, err := enc.Row([]Field{Int(42), Text(`Siti "Ani"`), Date(birth), Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, `42,"Siti \"Ani\"","1990-04-17",1`+"\n", line)
}

func TestRowRejectsDelimiterInsideValue(t *testing.T) {
	enc := Default()

	_, err := enc.Row([]Field{Text("Jakarta, Pusat")})
	assert.ErrorIs(t, err, ErrEncodingContract)

	_, err = enc.Row([]Field{Text("two\nlines")})
	assert.ErrorIs(t, err, ErrEncodingContract)

	_, err = enc.Row([]Field{Text(`C:\path`)})
	assert.ErrorIs(t, err, ErrEncodingContract)

	_, err = enc.Row([]Field{{Value: `1"2`}})
	assert.ErrorIs(t, err, ErrEncodingContract)
}

func TestSplitReversesRow(t *testing.T) {
	encoders := []Encoder{
		Default(),
		{Delimiter: "::", QuoteChar: `'`, EscapeChar: `'`, LineTerminator: "\n"},
	}
	fields := []Field{Int(7), Text(`RS "Harapan" Kita`), Text(""), Int(0)}

	for _, enc := range encoders {
		line, err := enc.Row(fields)
		require.NoError(t, err)

		lines := enc.Lines(line)
		require.Len(t, lines, 1)

		got, err := enc.Split(lines[0])
		require.NoError(t, err)
		assert.Equal(t, []string{"7", `RS "Harapan" Kita`, "", "0"}, got)
	}
}

func TestSplitMalformed(t *testing.T) {
	enc := Default()
	for _, line := range []string{`"open`, `"a"b`, `ab"c"`} {
		_, err := enc.Split(line)
		assert.ErrorIs(t, err, ErrMalformedField, line)
	}
}

func TestHeader(t *testing.T) {
	enc := Encoder{Delimiter: ";", QuoteChar: `"`, EscapeChar: `\`, LineTerminator: "\r\n"}
	assert.Equal(t, "id;nama\r\n", enc.Header([]string{"id", "nama"}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	bad := []Encoder{
		{QuoteChar: `"`, EscapeChar: `\`, LineTerminator: "\n"},
		{Delimiter: ",", EscapeChar: `\`, LineTerminator: "\n"},
		{Delimiter: ",", QuoteChar: `"`, LineTerminator: "\n"},
		{Delimiter: ",", QuoteChar: `"`, EscapeChar: `\`},
		{Delimiter: `"`, QuoteChar: `"`, EscapeChar: `\`, LineTerminator: "\n"},
		{Delimiter: "\n", QuoteChar: `"`, EscapeChar: `\`, LineTerminator: "\n"},
	}
	for _, enc := range bad {
		assert.Error(t, enc.Validate(), "%+v", enc)
	}
}

func TestEncoderYAMLRoundTrip(t *testing.T) {
	encoders := []Encoder{
		Default(),
		{Delimiter: "\t", QuoteChar: "'", EscapeChar: "'", LineTerminator: "\r\n"},
		{Delimiter: " ", QuoteChar: `"`, EscapeChar: `\`, LineTerminator: "\n\n"},
	}
	for _, enc := range encoders {
		data, err := yaml.Marshal(struct {
			Encoding Encoder `yaml:"encoding"`
		}{enc})
		require.NoError(t, err)

		var got struct {
			Encoding Encoder `yaml:"encoding"`
		}
		require.NoError(t, yaml.Unmarshal(data, &got), string(data))
		assert.Equal(t, enc, got.Encoding, string(data))
		assert.NoError(t, got.Encoding.Validate())
	}
}
