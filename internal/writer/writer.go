package writer

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/seeder"
	"go.uber.org/zap"
)

// Writer renders tables into <dir>/<table>.csv and emits one loader
// directive per table once its file is complete.
type Writer struct {
	dir     string
	enc     codec.Encoder
	dialect loader.Dialect
	sink    io.Writer
	logger  *zap.Logger
}

type Option func(*Writer)

// WithSink sends directives to w instead of stdout.
func WithSink(w io.Writer) Option {
	return func(wr *Writer) { wr.sink = w }
}

func WithLogger(l *zap.Logger) Option {
	return func(wr *Writer) { wr.logger = l }
}

func New(dir string, enc codec.Encoder, dialect loader.Dialect, opts ...Option) (*Writer, error) {
	if err := enc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoding: %w", err)
	}
	if dialect == nil {
		dialect = loader.MySQL{}
	}
	w := &Writer{
		dir:     dir,
		enc:     enc,
		dialect: dialect,
		sink:    os.Stdout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) path(table string) string {
	return filepath.Join(w.dir, table+".csv")
}

// WriteTable writes the header and every row of t. The file is closed before
// returning; on failure it is removed.
func (w *Writer) WriteTable(t seeder.Table) (tf TableFile, err error) {
	path := w.path(t.Name)
	f, err := os.Create(path)
	if err != nil {
		return TableFile{}, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	hash := sha256.New()
	buf := bufio.NewWriter(io.MultiWriter(f, hash))
	if _, err := buf.WriteString(w.enc.Header(t.Columns)); err != nil {
		return TableFile{}, fmt.Errorf("failed to write header of %s: %w", t.Name, err)
	}
	for i := 0; i < t.Len; i++ {
		fields := t.Row(i)
		if len(fields) != len(t.Columns) {
			return TableFile{}, fmt.Errorf("%s row %d: %d fields for %d columns", t.Name, i, len(fields), len(t.Columns))
		}
		line, err := w.enc.Row(fields)
		if err != nil {
			return TableFile{}, fmt.Errorf("%s row %d: %w", t.Name, i, err)
		}
		if _, err := buf.WriteString(line); err != nil {
			return TableFile{}, fmt.Errorf("failed to write %s: %w", t.Name, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return TableFile{}, fmt.Errorf("failed to flush %s: %w", t.Name, err)
	}

	return TableFile{
		Name:    t.Name,
		File:    filepath.Base(path),
		Columns: t.Columns,
		Rows:    t.Len,
		SHA256:  hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// WriteAll writes tables sequentially in the given order. Each directive goes
// to the sink and to <dir>/load.sql; the manifest is saved last.
func (w *Writer) WriteAll(ctx context.Context, tables []seeder.Table) (*Manifest, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	// a manifest left by an earlier run must not describe this run's files
	if err := os.Remove(filepath.Join(w.dir, ManifestFile)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale manifest: %w", err)
	}

	script, err := os.Create(filepath.Join(w.dir, ScriptFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", ScriptFile, err)
	}
	defer script.Close()

	m := newManifest(w.dir, w.dialect.Name(), w.enc)
	out := io.MultiWriter(w.sink, script)

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tf, err := w.WriteTable(t)
		if err != nil {
			return nil, err
		}
		m.Tables = append(m.Tables, tf)

		directive, err := w.dialect.Directive(w.enc, t.Name, w.path(t.Name), t.Columns)
		if err != nil {
			return nil, fmt.Errorf("directive for %s: %w", t.Name, err)
		}
		if _, err := io.WriteString(out, directive); err != nil {
			return nil, fmt.Errorf("failed to emit directive for %s: %w", t.Name, err)
		}

		w.logger.Info("table written",
			zap.String("table", t.Name),
			zap.Int("rows", tf.Rows),
			zap.String("file", tf.File),
		)
	}

	if err := m.Save(); err != nil {
		return nil, err
	}
	return m, nil
}

// EmitDirectives re-renders the directives of an existing manifest, possibly
// for another dialect.
func EmitDirectives(m *Manifest, dialect loader.Dialect, out io.Writer) error {
	for _, t := range m.Tables {
		directive, err := dialect.Directive(m.Encoding, t.Name, m.Path(t), t.Columns)
		if err != nil {
			return fmt.Errorf("directive for %s: %w", t.Name, err)
		}
		if _, err := io.WriteString(out, directive); err != nil {
			return err
		}
	}
	return nil
}
