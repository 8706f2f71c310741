// Package mapper extracts parties, dates, line items and commercial terms
// from plain document text into the canonical schema. It never fails: the
// worst case is a document with every field absent and confidence 0.
package mapper

import (
	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Critical fields the mapper attempts on every document. Each one that
// produces no match lowers overall confidence and lands in missing_fields.
var criticalFields = []string{
	"document_number",
	"parties",
	"dates",
	"line_items",
	"currency",
}

// Mapper extracts the canonical document from plain text.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map builds a CanonicalDocument from text. The document type is the
// classifier's business; it starts as UNKNOWN here and the orchestrator
// stamps the classified type on top.
func (m *Mapper) Map(text string) *entity.CanonicalDocument {
	doc := entity.NewCanonicalDocument(constants.DocTypeUnknown)

	extractDocumentNumber(doc, text)
	extractParties(doc, text)
	extractDates(doc, text)
	extractLineItems(doc, text)
	extractTerms(doc, text)

	doc.Confidence = scoreExtraction(doc)
	return doc
}

// scoreExtraction computes overall confidence as the found fraction of the
// attempted critical fields.
func scoreExtraction(doc *entity.CanonicalDocument) entity.ExtractionConfidence {
	missing := make([]string, 0, len(criticalFields))
	for _, f := range criticalFields {
		if !fieldPresent(doc, f) {
			missing = append(missing, f)
		}
	}
	conf := 1.0 - float64(len(missing))/float64(len(criticalFields))
	return entity.ExtractionConfidence{
		OverallConfidence: conf,
		MissingFields:     missing,
	}
}

func fieldPresent(doc *entity.CanonicalDocument, field string) bool {
	switch field {
	case "document_number":
		return doc.Metadata.DocumentNumber != nil
	case "parties":
		return len(doc.Parties) > 0
	case "dates":
		d := doc.Dates
		return d.IssueDate != nil || d.SubmissionDeadline != nil || d.DeliveryDate != nil || d.ValidityDate != nil
	case "line_items":
		return len(doc.LineItems) > 0
	case "currency":
		return doc.Terms.Currency != nil
	}
	return false
}
