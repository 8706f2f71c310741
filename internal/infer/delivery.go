package infer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var incotermWordRe = regexp.MustCompile(`\b[A-Z]{3}\b`)

// shipping context an Incoterm code must sit near; bare "CIF" in an unrelated
// sentence is not delivery language.
var shippingContextRe = regexp.MustCompile(`(?i)\b(delivery|deliver|shipping|shipment|freight|port|terms?)\b`)

const incotermWindow = 80

// detectDeliveryTerms matches the fixed Incoterm dictionary against
// shipping/delivery language.
type detectDeliveryTerms struct{}

func (r *detectDeliveryTerms) Name() string { return "detect_delivery_terms" }

func (r *detectDeliveryTerms) Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal {
	if doc.Terms.Incoterm != nil {
		return nil
	}
	for _, loc := range incotermWordRe.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		term, ok := constants.ParseIncoterm(word)
		if !ok {
			continue
		}
		start := loc[0] - incotermWindow
		if start < 0 {
			start = 0
		}
		end := loc[1] + incotermWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]
		if !shippingContextRe.MatchString(window) {
			continue
		}
		doc.Terms.Incoterm = &term
		return []entity.InferenceSignal{{
			RuleName:      r.Name(),
			FieldName:     "commercial_terms.incoterm",
			InferredValue: string(term),
			Confidence:    0.85,
			Evidence:      fmt.Sprintf("%q near %q", word, condense(strings.TrimSpace(window))),
		}}
	}
	return nil
}
