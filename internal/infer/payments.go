package infer

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var (
	advanceRe   = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*%\s*(?:advance|down\s*payment|upfront)|(?:advance|down\s*payment|upfront)\s*(?:of|payment)?\s*:?\s*(\d{1,2}(?:\.\d+)?)\s*%`)
	milestoneRe = regexp.MustCompile(`(?i)\bmilestone[-\s]based\b|\bpayment\s+milestones?\b|\bprogress\s+payments?\b`)
)

// inferPaymentTerms detects advance and milestone payment language and sets
// the corresponding flags on the commercial terms.
type inferPaymentTerms struct{}

func (r *inferPaymentTerms) Name() string { return "infer_payment_terms" }

func (r *inferPaymentTerms) Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal {
	var signals []entity.InferenceSignal

	if m := advanceRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if pct, err := strconv.ParseFloat(raw, 64); err == nil && pct > 0 && pct < 100 {
			doc.Terms.HasAdvancePayment = true
			if doc.Terms.AdvancePaymentPercentage == nil {
				v := pct
				doc.Terms.AdvancePaymentPercentage = &v
			}
			signals = append(signals, entity.InferenceSignal{
				RuleName:      r.Name(),
				FieldName:     "commercial_terms.advance_payment_percentage",
				InferredValue: fmt.Sprintf("%.1f", pct),
				Confidence:    0.85,
				Evidence:      condense(advanceRe.FindString(text)),
			})
		}
	}

	if m := milestoneRe.FindString(text); m != "" {
		doc.Terms.MilestoneBasedPayment = true
		signals = append(signals, entity.InferenceSignal{
			RuleName:      r.Name(),
			FieldName:     "commercial_terms.milestone_based_payment",
			InferredValue: "true",
			Confidence:    0.85,
			Evidence:      condense(m),
		})
	}
	return signals
}
