package infer

import (
	"fmt"
	"math"

	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// calculateTotals fills total_price = quantity * unit_price on line items
// missing a total. When a stated total disagrees with the computed value
// beyond tolerance it flags the line instead of overwriting it.
type calculateTotals struct {
	tolerance float64 // absolute floor
	relative  float64 // fraction of the stated total
}

func (r *calculateTotals) Name() string { return "calculate_totals" }

func (r *calculateTotals) Apply(doc *entity.CanonicalDocument, _ string) []entity.InferenceSignal {
	var signals []entity.InferenceSignal
	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.Quantity == nil || item.UnitPrice == nil {
			continue
		}
		computed := *item.Quantity * *item.UnitPrice

		if item.TotalPrice == nil {
			v := computed
			item.TotalPrice = &v
			signals = append(signals, entity.InferenceSignal{
				RuleName:      r.Name(),
				FieldName:     fmt.Sprintf("line_items[%d].total_price", i),
				InferredValue: fmt.Sprintf("%.2f", computed),
				Confidence:    0.95,
				Evidence:      fmt.Sprintf("line %d: %.2f x %.2f", item.LineNumber, *item.Quantity, *item.UnitPrice),
			})
			continue
		}

		tol := math.Max(r.tolerance, r.relative*math.Abs(*item.TotalPrice))
		if diff := math.Abs(*item.TotalPrice - computed); diff > tol {
			signals = append(signals, entity.InferenceSignal{
				RuleName:       r.Name(),
				FieldName:      fmt.Sprintf("line_items[%d].total_price", i),
				InferredValue:  fmt.Sprintf("%.2f", computed),
				Confidence:     0.9,
				Evidence:       fmt.Sprintf("line %d: stated total %.2f differs from %.2f x %.2f = %.2f", item.LineNumber, *item.TotalPrice, *item.Quantity, *item.UnitPrice, computed),
				RequiresReview: true,
			})
		}
	}
	return signals
}

// calculateTax reports the implied tax amount when a VAT rate and subtotal
// are known. Tax amount is not a schema field, so this is advisory only.
type calculateTax struct{}

func (r *calculateTax) Name() string { return "calculate_tax" }

func (r *calculateTax) Apply(doc *entity.CanonicalDocument, _ string) []entity.InferenceSignal {
	if doc.Terms.VATRate == nil {
		return nil
	}
	subtotal, ok := doc.Subtotal()
	if !ok {
		return nil
	}
	tax := subtotal * *doc.Terms.VATRate / 100
	return []entity.InferenceSignal{{
		RuleName:      r.Name(),
		FieldName:     "tax_amount",
		InferredValue: fmt.Sprintf("%.2f", tax),
		Confidence:    0.85,
		Evidence:      fmt.Sprintf("subtotal %.2f at %.1f%% VAT", subtotal, *doc.Terms.VATRate),
	}}
}
