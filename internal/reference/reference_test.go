package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestParsePreservesOrder(t *testing.T) {
	records, err := Parse(strings.NewReader("id;provinsi\n32;Jawa Barat\n11;Aceh\n"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{"id": "32", "provinsi": "Jawa Barat"}, records[0])
	assert.Equal(t, Record{"id": "11", "provinsi": "Aceh"}, records[1])
}

func TestParseMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestParseFieldCountMismatch(t *testing.T) {
	_, err := Parse(strings.NewReader("developer;nama\nSinovac;CoronaVac\nAstraZeneca\n"))
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestParseStripsByteOrderMark(t *testing.T) {
	records, err := Parse(strings.NewReader("\ufeffname\nAsma\n"))
	require.NoError(t, err)
	assert.Equal(t, "Asma", records[0]["name"])
}

func TestCitiesRejectsBadID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CityFile, "city_id;province_id;type;city_name\nabc;31;Kota;Jakarta Selatan\n")

	_, err := Cities(dir)
	assert.Error(t, err)
}

func TestVaccinesMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, VaccineFile, "nama\nCoronaVac\n")

	_, err := Vaccines(dir)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadAllSampleData(t *testing.T) {
	b, err := LoadAll(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	assert.NotEmpty(t, b.Provinces)
	assert.NotEmpty(t, b.Cities)
	assert.GreaterOrEqual(t, len(b.Conditions), 20)
	assert.NotEmpty(t, b.Jobs)
	assert.NotEmpty(t, b.Vaccines)

	provinces := make(map[int64]bool)
	for _, p := range b.Provinces {
		provinces[p.ID] = true
	}
	for _, c := range b.Cities {
		assert.True(t, provinces[c.ProvinceID], "city %d references unknown province %d", c.ID, c.ProvinceID)
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ProvinceFile, "id;provinsi\n11;Aceh\n")

	_, err := LoadAll(dir)
	assert.Error(t, err)
}
