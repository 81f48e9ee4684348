package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/xuri/excelize/v2"
)

// ToXLSX writes one sheet per table with a bold, frozen header row.
// Purely numeric values are stored as numbers.
func ToXLSX(m *writer.Manifest, exportPath string) (string, error) {
	tables, err := readTables(m)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("manifest has no tables")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		index, err := f.NewSheet(t.name)
		if err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", t.name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheet(f, t, headerStyle); err != nil {
			return "", fmt.Errorf("sheet %s: %w", t.name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	filePath := filepath.Join(exportPath, fmt.Sprintf("export_%s.xlsx", stamp()))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func writeSheet(f *excelize.File, t table, headerStyle int) error {
	for col, name := range t.columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(t.name, cell, name); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(t.columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, values := range t.rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(t.name, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}

	return f.SetPanes(t.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// cellValue keeps identifiers such as NIK and phone numbers as text when
// they would lose precision or a leading zero as a number.
func cellValue(v string) interface{} {
	if len(v) > 15 || (len(v) > 1 && v[0] == '0') {
		return v
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}
