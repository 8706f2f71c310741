package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Knotcreativ/kraftd-extract/constants"
)

// CanonicalDocument is the working record built up by the pipeline for data
// transfer between stages. Optional fields are pointers so a missing value is
// distinguishable from a legitimate zero.
type CanonicalDocument struct {
	DocumentID uuid.UUID                          `json:"document_id"`
	Metadata   DocumentMetadata                   `json:"metadata"`
	Parties    map[constants.PartyRole]*Party     `json:"parties,omitempty"`
	Dates      DocumentDates                      `json:"dates"`
	LineItems  []LineItem                         `json:"line_items,omitempty"`
	Terms      CommercialTerms                    `json:"commercial_terms"`
	Confidence ExtractionConfidence               `json:"extraction_confidence"`
}

// DocumentMetadata identifies the document itself.
type DocumentMetadata struct {
	DocumentType   constants.DocumentType `json:"document_type"`
	DocumentNumber *string                `json:"document_number,omitempty"`
	RevisionNumber *string                `json:"revision_number,omitempty"`
	IssueDate      *time.Time             `json:"issue_date,omitempty"`
}

// Party is one named party on the document. Contact fields are independently
// optional; a party can have partial contact info.
type Party struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// DocumentDates holds the dates a procurement document can carry. All optional.
type DocumentDates struct {
	IssueDate          *time.Time `json:"issue_date,omitempty"`
	SubmissionDeadline *time.Time `json:"submission_deadline,omitempty"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	ValidityDate       *time.Time `json:"validity_date,omitempty"`
}

// LineItem is one row of the document's item table.
type LineItem struct {
	LineNumber         int      `json:"line_number"`
	Description        *string  `json:"description,omitempty"`
	Quantity           *float64 `json:"quantity,omitempty"`
	UnitOfMeasure      *string  `json:"unit_of_measure,omitempty"`
	UnitPrice          *float64 `json:"unit_price,omitempty"`
	TotalPrice         *float64 `json:"total_price,omitempty"`
	Currency           *string  `json:"currency,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	IsAlternative      bool     `json:"is_alternative"`
}

// CommercialTerms holds document-level commercial conditions.
type CommercialTerms struct {
	Currency                 *string            `json:"currency,omitempty"`
	VATRate                  *float64           `json:"vat_rate,omitempty"`
	PaymentTerms             *string            `json:"payment_terms,omitempty"`
	WarrantyPeriod           *string            `json:"warranty_period,omitempty"`
	Incoterm                 *constants.Incoterm `json:"incoterm,omitempty"`
	DiscountPercentage       *float64           `json:"discount_percentage,omitempty"`
	HasAdvancePayment        bool               `json:"has_advance_payment"`
	AdvancePaymentPercentage *float64           `json:"advance_payment_percentage,omitempty"`
	MilestoneBasedPayment    bool               `json:"milestone_based_payment"`
	SpecialConditions        []string           `json:"special_conditions,omitempty"`
}

// ExtractionConfidence summarizes how much of the document the mapper found.
type ExtractionConfidence struct {
	OverallConfidence float64  `json:"overall_confidence"`
	MissingFields     []string `json:"missing_fields,omitempty"`
}

// NewCanonicalDocument returns an empty document of the given type.
// Every optional field starts absent.
func NewCanonicalDocument(docType constants.DocumentType) *CanonicalDocument {
	return &CanonicalDocument{
		Metadata: DocumentMetadata{DocumentType: docType},
		Parties:  make(map[constants.PartyRole]*Party),
	}
}

// PartyFor returns the party holding the given role, or nil.
func (d *CanonicalDocument) PartyFor(role constants.PartyRole) *Party {
	if d.Parties == nil {
		return nil
	}
	return d.Parties[role]
}

// Subtotal sums the line-item totals that are present. The bool is false when
// no line item carries a total.
func (d *CanonicalDocument) Subtotal() (float64, bool) {
	sum := 0.0
	found := false
	for i := range d.LineItems {
		if d.LineItems[i].TotalPrice != nil {
			sum += *d.LineItems[i].TotalPrice
			found = true
		}
	}
	return sum, found
}
