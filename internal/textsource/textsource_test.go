package textsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFromFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rfq.txt")
	require.NoError(t, os.WriteFile(path, []byte("REQUEST FOR QUOTATION\nRFQ-1\n"), 0o644))

	text, name, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rfq.txt", name)
	assert.Contains(t, text, "REQUEST FOR QUOTATION")
}

func TestFromFileRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x01, 0x02}, 0o644))

	_, _, err := FromFile(path)
	require.Error(t, err)
}

func TestFromFileFlattensWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boq.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"BILL OF QUANTITIES"},
		{"BOQ-2024-07"},
		{1, "Excavation to formation level", 450, "cum", 22.5, 10125},
		{2, "Blinding concrete 50mm", 120, "sqm", 18.0, 2160},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, name, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "boq.xlsx", name)
	assert.Contains(t, text, "BILL OF QUANTITIES")
	assert.Contains(t, text, "1\tExcavation to formation level\t450\tcum\t22.5\t10125")
}
