package infer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var currencyCodeRe = regexp.MustCompile(`\b[A-Z]{3}\b`)

// inferCurrency backfills commercial_terms.currency from currency codes or
// symbols mentioned anywhere in the text. Confidence scales with how many
// corroborating mentions it finds.
type inferCurrency struct{}

func (r *inferCurrency) Name() string { return "infer_currency" }

func (r *inferCurrency) Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal {
	if doc.Terms.Currency != nil {
		return nil
	}

	counts := make(map[string]int)
	firstEvidence := make(map[string]string)

	for _, m := range currencyCodeRe.FindAllString(text, -1) {
		if constants.IsCurrencyCode(m) {
			counts[m]++
			if _, ok := firstEvidence[m]; !ok {
				firstEvidence[m] = fmt.Sprintf("code %q in text", m)
			}
		}
	}
	for sym, code := range constants.CurrencySymbols {
		if n := strings.Count(text, sym); n > 0 {
			counts[code] += n
			if _, ok := firstEvidence[code]; !ok {
				firstEvidence[code] = fmt.Sprintf("symbol %q in text", sym)
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	// Most-mentioned currency wins; alphabetical order breaks count ties so
	// repeated runs agree.
	best, bestCount := "", 0
	for code, n := range counts {
		if n > bestCount || (n == bestCount && code < best) {
			best, bestCount = code, n
		}
	}

	doc.Terms.Currency = &best
	confidence := 0.5 + 0.1*float64(bestCount)
	if confidence > 0.9 {
		confidence = 0.9
	}
	return []entity.InferenceSignal{{
		RuleName:      r.Name(),
		FieldName:     "commercial_terms.currency",
		InferredValue: best,
		Confidence:    confidence,
		Evidence:      fmt.Sprintf("%s (%d mention(s))", firstEvidence[best], bestCount),
	}}
}
