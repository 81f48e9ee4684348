package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hilyafadhilah/tubes-basdat/internal/codec"
	"gopkg.in/yaml.v3"
)

const (
	ManifestFile = "manifest.yaml"
	ScriptFile   = "load.sql"
)

// Manifest records what a generate run wrote, in load order.
type Manifest struct {
	RunID       string        `yaml:"run_id"`
	GeneratedAt time.Time     `yaml:"generated_at"`
	Dialect     string        `yaml:"dialect"`
	Encoding    codec.Encoder `yaml:"encoding"`
	Tables      []TableFile   `yaml:"tables"`

	dir string
}

type TableFile struct {
	Name    string   `yaml:"name"`
	File    string   `yaml:"file"`
	Columns []string `yaml:"columns"`
	Rows    int      `yaml:"rows"`
	SHA256  string   `yaml:"sha256"`
}

func newManifest(dir, dialect string, enc codec.Encoder) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Dialect:     dialect,
		Encoding:    enc,
		dir:         dir,
	}
}

// Dir is the directory the manifest was written to or read from.
func (m *Manifest) Dir() string { return m.dir }

// Path resolves a table file relative to the manifest directory.
func (m *Manifest) Path(t TableFile) string {
	if filepath.IsAbs(t.File) {
		return t.File
	}
	return filepath.Join(m.dir, t.File)
}

func (m *Manifest) Table(name string) (TableFile, bool) {
	for _, t := range m.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableFile{}, false
}

func (m *Manifest) Save() error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

var ErrChecksumMismatch = errors.New("table file changed since it was generated")

// Verify re-hashes every table file and compares it with the recorded
// checksum.
func (m *Manifest) Verify() error {
	for _, t := range m.Tables {
		sum, err := fileChecksum(m.Path(t))
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", t.File, err)
		}
		if sum != t.SHA256 {
			return fmt.Errorf("%w: %s", ErrChecksumMismatch, t.File)
		}
	}
	return nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ReadManifest loads <dir>/manifest.yaml.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Encoding.Validate(); err != nil {
		return nil, fmt.Errorf("manifest encoding: %w", err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		return nil, fmt.Errorf("manifest run id: %w", err)
	}
	m.dir = dir
	return &m, nil
}
