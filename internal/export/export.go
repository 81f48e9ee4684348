package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
)

// Data is the decoded content of one generate run.
type Data struct {
	RunID     string                         `json:"run_id"`
	Timestamp string                         `json:"timestamp"`
	Order     []string                       `json:"order"`
	Tables    map[string][]map[string]string `json:"tables"`
}

type table struct {
	name    string
	columns []string
	rows    [][]string
}

func PerformExport(m *writer.Manifest, exportPath, format string) (string, error) {
	switch format {
	case "xlsx":
		return ToXLSX(m, exportPath)
	case "json", "":
		return ToJSON(m, exportPath)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func readTables(m *writer.Manifest) ([]table, error) {
	tables := make([]table, 0, len(m.Tables))
	for _, tf := range m.Tables {
		content, err := os.ReadFile(m.Path(tf))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", tf.Name, err)
		}

		lines := m.Encoding.Lines(string(content))
		if len(lines) == 0 {
			return nil, fmt.Errorf("%s: missing header line", tf.Name)
		}

		t := table{name: tf.Name, columns: tf.Columns, rows: make([][]string, 0, len(lines)-1)}
		for i, line := range lines[1:] {
			values, err := m.Encoding.Split(line)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", tf.Name, i+2, err)
			}
			if len(values) != len(tf.Columns) {
				return nil, fmt.Errorf("%s line %d: %d values for %d columns", tf.Name, i+2, len(values), len(tf.Columns))
			}
			t.rows = append(t.rows, values)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func ToJSON(m *writer.Manifest, exportPath string) (string, error) {
	tables, err := readTables(m)
	if err != nil {
		return "", err
	}

	data := Data{
		RunID:     m.RunID,
		Timestamp: m.GeneratedAt.Format("2006-01-02 15:04:05"),
		Tables:    make(map[string][]map[string]string, len(tables)),
	}
	for _, t := range tables {
		data.Order = append(data.Order, t.name)
		rows := make([]map[string]string, len(t.rows))
		for i, values := range t.rows {
			row := make(map[string]string, len(t.columns))
			for j, col := range t.columns {
				row[col] = values[j]
			}
			rows[i] = row
		}
		data.Tables[t.name] = rows
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filePath := filepath.Join(exportPath, fmt.Sprintf("export_%s.json", stamp()))
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func stamp() string {
	return time.Now().Format("2006-01-02_15-04-05")
}
