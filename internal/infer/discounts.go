package infer

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var discountRe = regexp.MustCompile(`(?i)\bdiscount\b\D{0,30}?(\d{1,2}(?:\.\d+)?)\s*%|(\d{1,2}(?:\.\d+)?)\s*%\s*discount\b`)

// detectDiscounts picks up discount percentage language and sets the
// commercial-terms discount, attributing it to line items that mention a
// discount themselves.
type detectDiscounts struct{}

func (r *detectDiscounts) Name() string { return "detect_discounts" }

func (r *detectDiscounts) Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal {
	m := discountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil || pct <= 0 || pct >= 100 {
		return nil
	}

	var signals []entity.InferenceSignal
	evidence := condense(discountRe.FindString(text))

	// document-level discount rides on every line item that has none of its
	// own and mentions a discount in its description
	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.DiscountPercentage != nil || item.Description == nil {
			continue
		}
		if discountWordRe.MatchString(*item.Description) {
			v := pct
			item.DiscountPercentage = &v
			signals = append(signals, entity.InferenceSignal{
				RuleName:      r.Name(),
				FieldName:     fmt.Sprintf("line_items[%d].discount_percentage", i),
				InferredValue: fmt.Sprintf("%.1f", pct),
				Confidence:    0.7,
				Evidence:      fmt.Sprintf("line %d description mentions a discount", item.LineNumber),
			})
		}
	}

	if doc.Terms.DiscountPercentage == nil {
		v := pct
		doc.Terms.DiscountPercentage = &v
		signals = append(signals, entity.InferenceSignal{
			RuleName:      r.Name(),
			FieldName:     "commercial_terms.discount_percentage",
			InferredValue: fmt.Sprintf("%.1f", pct),
			Confidence:    0.75,
			Evidence:      evidence,
		})
	}
	return signals
}

var discountWordRe = regexp.MustCompile(`(?i)\bdisc(?:ount)?\b`)
