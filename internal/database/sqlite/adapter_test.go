package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/seeder"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func connect(t *testing.T) *Adapter {
	t.Helper()
	a := New(zap.NewNop())
	require.NoError(t, a.Connect(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "vaksinasi.db")))
	t.Cleanup(func() { a.Close() })
	require.NoError(t, a.Ping(context.Background()))
	return a
}

func manifest(t *testing.T, enc codec.Encoder) *writer.Manifest {
	t.Helper()
	w, err := writer.New(t.TempDir(), enc, loader.MySQL{}, writer.WithSink(&bytes.Buffer{}))
	require.NoError(t, err)

	provinces := [][]codec.Field{
		{codec.Int(31), codec.Text("DKI Jakarta")},
		{codec.Int(32), codec.Text(`Jawa "Barat"`)},
	}
	posts := [][]codec.Field{
		{codec.Int(1), codec.Bool(true)},
		{codec.Int(2), codec.Bool(false)},
	}
	m, err := w.WriteAll(context.Background(), []seeder.Table{
		{Name: "provinsi", Columns: []string{"id", "nama"}, Len: len(provinces), Row: func(i int) []codec.Field { return provinces[i] }},
		{Name: "puskesmas", Columns: []string{"id_faskes", "rawat_inap"}, Len: len(posts), Row: func(i int) []codec.Field { return posts[i] }},
	})
	require.NoError(t, err)
	return m
}

func TestLoadInsertsDecodedRows(t *testing.T) {
	for _, enc := range []codec.Encoder{
		codec.Default(),
		{Delimiter: ";", QuoteChar: "'", EscapeChar: "'", LineTerminator: "\r\n"},
		{Delimiter: "|", QuoteChar: `"`, EscapeChar: `"`, LineTerminator: "\n"},
	} {
		a := connect(t)
		m := manifest(t, enc)

		loaded, err := a.Load(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"provinsi": 2, "puskesmas": 2}, loaded)

		var name string
		require.NoError(t, a.db.QueryRow("SELECT nama FROM provinsi WHERE id = '32'").Scan(&name))
		assert.Equal(t, `Jawa "Barat"`, name)

		var inpatient string
		require.NoError(t, a.db.QueryRow("SELECT rawat_inap FROM puskesmas WHERE id_faskes = '1'").Scan(&inpatient))
		assert.Equal(t, "1", inpatient)
	}
}

func TestLoadIntoExistingSchema(t *testing.T) {
	a := connect(t)
	require.NoError(t, a.Exec(context.Background(), `
CREATE TABLE provinsi (id INTEGER PRIMARY KEY, nama TEXT NOT NULL);
CREATE TABLE puskesmas (id_faskes INTEGER PRIMARY KEY, rawat_inap INTEGER NOT NULL);
`))

	_, err := a.Load(context.Background(), manifest(t, codec.Default()))
	require.NoError(t, err)

	var count int
	require.NoError(t, a.db.QueryRow("SELECT COUNT(*) FROM puskesmas WHERE rawat_inap = 0").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoadRollsBackOnFailure(t *testing.T) {
	a := connect(t)
	require.NoError(t, a.Exec(context.Background(), `
CREATE TABLE provinsi (id INTEGER PRIMARY KEY, nama TEXT NOT NULL);
CREATE TABLE puskesmas (id_faskes INTEGER PRIMARY KEY, rawat_inap INTEGER NOT NULL);
INSERT INTO puskesmas VALUES (2, 1);
`))

	_, err := a.Load(context.Background(), manifest(t, codec.Default()))
	require.Error(t, err)

	var count int
	require.NoError(t, a.db.QueryRow("SELECT COUNT(*) FROM provinsi").Scan(&count))
	assert.Zero(t, count)
}
