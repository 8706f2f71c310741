package mapper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Date anchors, checked in order. More specific anchors come first so
// "Delivery Date:" is not swallowed by the generic "Date:" anchor.
var dateAnchors = []struct {
	field string
	re    *regexp.Regexp
}{
	{"submission_deadline", regexp.MustCompile(`(?i)(?:submission\s+deadline|closing\s+date|deadline\s+for\s+submission|due\s+date)\s*:?\s*`)},
	{"delivery_date", regexp.MustCompile(`(?i)delivery\s+date\s*:?\s*`)},
	{"validity_date", regexp.MustCompile(`(?i)(?:valid\s+(?:until|till)|validity\s+date|expires?\s+on)\s*:?\s*`)},
	// line-anchored so "Delivery Date:" never feeds the generic date anchor
	{"issue_date", regexp.MustCompile(`(?im)^[ \t]*(?:issue\s+date|date\s+of\s+issue|dated|date)\s*:?\s*`)},
}

// dateWindow is how far past an anchor a date token may sit.
const dateWindow = 40

var (
	numericDateRe = regexp.MustCompile(`\b(\d{1,4})[\-/.](\d{1,2})[\-/.](\d{1,4})\b`)
	wordDateRe    = regexp.MustCompile(`(?i)\b(?:(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]{3,9})\s*,?\s+(\d{4})|([A-Za-z]{3,9})\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s+(\d{4}))\b`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// extractDates pairs each anchor with the nearest following date token.
// An anchor with no parseable date nearby leaves that field absent.
func extractDates(doc *entity.CanonicalDocument, text string) {
	for _, anchor := range dateAnchors {
		if dateFieldSet(doc, anchor.field) {
			continue
		}
		loc := anchor.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		end := loc[1] + dateWindow
		if end > len(text) {
			end = len(text)
		}
		if t, ok := parseDateToken(text[loc[1]:end]); ok {
			setDateField(doc, anchor.field, t)
		}
	}
	if doc.Dates.IssueDate != nil && doc.Metadata.IssueDate == nil {
		doc.Metadata.IssueDate = doc.Dates.IssueDate
	}
}

func dateFieldSet(doc *entity.CanonicalDocument, field string) bool {
	switch field {
	case "issue_date":
		return doc.Dates.IssueDate != nil
	case "submission_deadline":
		return doc.Dates.SubmissionDeadline != nil
	case "delivery_date":
		return doc.Dates.DeliveryDate != nil
	case "validity_date":
		return doc.Dates.ValidityDate != nil
	}
	return false
}

func setDateField(doc *entity.CanonicalDocument, field string, t time.Time) {
	switch field {
	case "issue_date":
		doc.Dates.IssueDate = &t
	case "submission_deadline":
		doc.Dates.SubmissionDeadline = &t
	case "delivery_date":
		doc.Dates.DeliveryDate = &t
	case "validity_date":
		doc.Dates.ValidityDate = &t
	}
}

// parseDateToken recognizes numeric (15/03/2024, 2024-03-15) and worded
// (15 March 2024, March 15, 2024) forms. Day-first is assumed for ambiguous
// numeric dates, matching the procurement corpus this serves.
func parseDateToken(s string) (time.Time, bool) {
	if m := wordDateRe.FindStringSubmatch(s); m != nil {
		var dayStr, monStr, yearStr string
		if m[1] != "" {
			dayStr, monStr, yearStr = m[1], m[2], m[3]
		} else {
			monStr, dayStr, yearStr = m[4], m[5], m[6]
		}
		mon, ok := monthNames[strings.ToLower(monStr)[:3]]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(dayStr)
		year, _ := strconv.Atoi(yearStr)
		return makeDate(year, mon, day)
	}
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])
		switch {
		case a > 1000: // yyyy-mm-dd
			return makeDate(a, time.Month(b), c)
		case c > 1000 && b <= 12: // dd/mm/yyyy
			return makeDate(c, time.Month(b), a)
		case c > 1000 && a <= 12: // mm swapped: value only parses month-first
			return makeDate(c, time.Month(a), b)
		}
	}
	return time.Time{}, false
}

func makeDate(year int, mon time.Month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 || mon < 1 || mon > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
	// reject overflow like 31 Feb normalizing to March
	if t.Month() != mon || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
