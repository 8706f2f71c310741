package infer

import (
	"fmt"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// validateLineItems flags suspicious line items without repairing them:
// zero or negative quantities, all-blank rows, negative prices. The
// validator consumes these signals when deciding on manual review.
type validateLineItems struct{}

func (r *validateLineItems) Name() string { return "validate_line_items" }

func (r *validateLineItems) Apply(doc *entity.CanonicalDocument, _ string) []entity.InferenceSignal {
	var signals []entity.InferenceSignal
	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		field := fmt.Sprintf("line_items[%d]", i)

		if blank(item) {
			signals = append(signals, entity.InferenceSignal{
				RuleName:       r.Name(),
				FieldName:      field,
				Confidence:     1.0,
				Evidence:       fmt.Sprintf("line %d has no usable fields", item.LineNumber),
				RequiresReview: true,
			})
			continue
		}
		if item.Quantity != nil && *item.Quantity == 0 {
			signals = append(signals, entity.InferenceSignal{
				RuleName:       r.Name(),
				FieldName:      field + ".quantity",
				Confidence:     1.0,
				Evidence:       fmt.Sprintf("line %d has zero quantity", item.LineNumber),
				RequiresReview: true,
			})
		}
		if item.Quantity != nil && *item.Quantity < 0 {
			signals = append(signals, entity.InferenceSignal{
				RuleName:       r.Name(),
				FieldName:      field + ".quantity",
				Confidence:     1.0,
				Evidence:       fmt.Sprintf("line %d has negative quantity %.2f", item.LineNumber, *item.Quantity),
				RequiresReview: true,
			})
		}
		if item.UnitPrice != nil && *item.UnitPrice < 0 {
			signals = append(signals, entity.InferenceSignal{
				RuleName:       r.Name(),
				FieldName:      field + ".unit_price",
				Confidence:     1.0,
				Evidence:       fmt.Sprintf("line %d has negative unit price %.2f", item.LineNumber, *item.UnitPrice),
				RequiresReview: true,
			})
		}
	}
	return signals
}

func blank(item *entity.LineItem) bool {
	hasDesc := item.Description != nil && strings.TrimSpace(*item.Description) != ""
	return !hasDesc && item.Quantity == nil && item.UnitPrice == nil && item.TotalPrice == nil
}
