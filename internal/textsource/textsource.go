// Package textsource is the caller-side bridge between files on disk and
// the plain text the pipeline consumes. Spreadsheet bills-of-quantities are
// flattened to tab-delimited rows; everything else is read as text. The
// pipeline itself never touches files.
package textsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Knotcreativ/kraftd-extract/internal/common"
)

// FromFile reads path and returns plain text plus the base file name as a
// provenance hint.
func FromFile(path string) (string, string, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if ext == "xlsx" || ext == "xlsm" {
		text, err := flattenWorkbook(path)
		if err != nil {
			return "", name, common.WrapError(err, "flatten workbook")
		}
		return text, name, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", name, common.WrapError(err, "read file")
	}
	if !utf8.Valid(b) {
		return "", name, common.NewAppError("NOT_TEXT", fmt.Sprintf("%s is not a text file", name), common.ErrNotText)
	}
	return string(b), name, nil
}

// flattenWorkbook joins every sheet's cells with tabs and rows with
// newlines, which is exactly the row shape the line-item extractor reads.
func flattenWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t ")
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
