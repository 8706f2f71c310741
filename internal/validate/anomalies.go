package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// detectAnomalies finds internal inconsistencies, as opposed to missing
// fields: bad quantities, price outliers against the document's own median,
// impossible date ordering, and totals that don't reconcile.
func (v *Validator) detectAnomalies(doc *entity.CanonicalDocument) []string {
	var anomalies []string

	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.Quantity != nil && *item.Quantity == 0 {
			anomalies = append(anomalies, fmt.Sprintf("line %d has zero quantity", item.LineNumber))
		}
		if item.Quantity != nil && *item.Quantity < 0 {
			anomalies = append(anomalies, fmt.Sprintf("line %d has negative quantity %.2f", item.LineNumber, *item.Quantity))
		}
		if item.UnitPrice != nil && *item.UnitPrice < 0 {
			anomalies = append(anomalies, fmt.Sprintf("line %d has negative unit price %.2f", item.LineNumber, *item.UnitPrice))
		}
	}

	anomalies = append(anomalies, v.priceOutliers(doc)...)

	if doc.Dates.ValidityDate != nil && doc.Dates.IssueDate != nil &&
		doc.Dates.ValidityDate.Before(*doc.Dates.IssueDate) {
		anomalies = append(anomalies, fmt.Sprintf("validity date %s is earlier than issue date %s",
			doc.Dates.ValidityDate.Format("2006-01-02"), doc.Dates.IssueDate.Format("2006-01-02")))
	}
	if doc.Dates.DeliveryDate != nil && doc.Dates.IssueDate != nil &&
		doc.Dates.DeliveryDate.Before(*doc.Dates.IssueDate) {
		anomalies = append(anomalies, fmt.Sprintf("delivery date %s is earlier than issue date %s",
			doc.Dates.DeliveryDate.Format("2006-01-02"), doc.Dates.IssueDate.Format("2006-01-02")))
	}

	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.Quantity == nil || item.UnitPrice == nil || item.TotalPrice == nil {
			continue
		}
		computed := *item.Quantity * *item.UnitPrice
		tol := math.Max(constants.ReconcileTolerance, constants.ReconcileRelative*math.Abs(*item.TotalPrice))
		if math.Abs(*item.TotalPrice-computed) > tol {
			anomalies = append(anomalies, fmt.Sprintf("line %d total %.2f does not reconcile with %.2f x %.2f",
				item.LineNumber, *item.TotalPrice, *item.Quantity, *item.UnitPrice))
		}
	}

	return anomalies
}

// priceOutliers flags unit prices implausibly far from the document's own
// median. Needs enough priced items to establish a median.
func (v *Validator) priceOutliers(doc *entity.CanonicalDocument) []string {
	var prices []float64
	for i := range doc.LineItems {
		if doc.LineItems[i].UnitPrice != nil && *doc.LineItems[i].UnitPrice > 0 {
			prices = append(prices, *doc.LineItems[i].UnitPrice)
		}
	}
	if len(prices) < constants.MinPricedItemsForOutlier {
		return nil
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	if median <= 0 {
		return nil
	}

	var anomalies []string
	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.UnitPrice == nil || *item.UnitPrice <= 0 {
			continue
		}
		ratio := *item.UnitPrice / median
		if ratio > v.cfg.OutlierMultiplier || ratio < 1/v.cfg.OutlierMultiplier {
			anomalies = append(anomalies, fmt.Sprintf("line %d unit price %.2f is an outlier against document median %.2f",
				item.LineNumber, *item.UnitPrice, median))
		}
	}
	return anomalies
}
