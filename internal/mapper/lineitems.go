package mapper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var (
	leadingIndexRe = regexp.MustCompile(`^\d{1,4}$`)
	numberRe       = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})*(?:\.\d+)?$|^-?\d+(?:\.\d+)?$`)
	altRe          = regexp.MustCompile(`(?i)\balt(?:ernative|\.)?\b`)
)

// Unit-of-measure tokens seen across procurement tables.
var uomTokens = map[string]struct{}{
	"pcs": {}, "pc": {}, "ea": {}, "each": {}, "set": {}, "sets": {},
	"lot": {}, "nos": {}, "no": {}, "unit": {}, "units": {},
	"kg": {}, "g": {}, "ton": {}, "tons": {}, "m": {}, "mm": {}, "cm": {},
	"sqm": {}, "cum": {}, "rmt": {}, "ltr": {}, "l": {}, "box": {},
	"roll": {}, "hrs": {}, "hr": {}, "day": {}, "days": {}, "month": {},
}

// extractLineItems captures pipe/tab/column-delimited rows whose leading cell
// is a monotonically increasing index. Missing cells stay absent, never zero.
func extractLineItems(doc *entity.CanonicalDocument, text string) {
	lastIndex := 0
	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) < 2 {
			continue
		}
		if !leadingIndexRe.MatchString(cells[0]) {
			continue
		}
		idx, err := strconv.Atoi(cells[0])
		if err != nil || idx <= lastIndex {
			continue
		}

		item := parseRow(idx, cells[1:])
		if item == nil {
			continue
		}
		lastIndex = idx
		doc.LineItems = append(doc.LineItems, *item)
	}
}

// parseRow interprets the cells after the index. Numeric cells are assigned
// positionally (quantity, unit price, total); the longest textual cell is
// the description. A row needs at least two populated fields to count.
func parseRow(idx int, cells []string) *entity.LineItem {
	item := &entity.LineItem{LineNumber: idx}

	var numbers []float64
	populated := 0
	for _, cell := range cells {
		cleaned, currency := stripCurrency(cell)
		if currency != "" && item.Currency == nil {
			c := currency
			item.Currency = &c
		}
		if numberRe.MatchString(cleaned) {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", ""), 64); err == nil {
				numbers = append(numbers, v)
				continue
			}
		}
		lower := strings.ToLower(strings.TrimSpace(cell))
		if _, ok := uomTokens[lower]; ok && item.UnitOfMeasure == nil {
			u := strings.TrimSpace(cell)
			item.UnitOfMeasure = &u
			continue
		}
		if item.Description == nil || len(cell) > len(*item.Description) {
			d := strings.TrimSpace(cell)
			if d != "" {
				item.Description = &d
			}
		}
	}

	switch len(numbers) {
	case 0:
	case 1:
		item.Quantity = &numbers[0]
	case 2:
		item.Quantity = &numbers[0]
		item.UnitPrice = &numbers[1]
	default:
		item.Quantity = &numbers[0]
		item.UnitPrice = &numbers[1]
		item.TotalPrice = &numbers[2]
	}

	if item.Description != nil {
		populated++
		if altRe.MatchString(*item.Description) {
			item.IsAlternative = true
		}
	}
	if item.Quantity != nil {
		populated++
	}
	if item.UnitPrice != nil {
		populated++
	}
	if item.TotalPrice != nil {
		populated++
	}
	if populated < 2 {
		return nil
	}
	return item
}

var cellSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// splitCells splits a candidate row on pipes, tabs, or 2+ space column gaps.
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	var parts []string
	if strings.Contains(line, "|") {
		parts = strings.Split(strings.Trim(line, "|"), "|")
	} else {
		parts = cellSplitRe.Split(line, -1)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripCurrency removes a currency symbol or code from a money cell,
// reporting which currency it saw.
func stripCurrency(cell string) (cleaned, currency string) {
	cleaned = strings.TrimSpace(cell)
	for sym, code := range constants.CurrencySymbols {
		if strings.Contains(cleaned, sym) {
			return strings.TrimSpace(strings.ReplaceAll(cleaned, sym, "")), code
		}
	}
	fields := strings.Fields(cleaned)
	if len(fields) == 2 {
		if constants.IsCurrencyCode(fields[0]) {
			return fields[1], strings.ToUpper(fields[0])
		}
		if constants.IsCurrencyCode(fields[1]) {
			return fields[0], strings.ToUpper(fields[1])
		}
	}
	return cleaned, ""
}
