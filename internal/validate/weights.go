package validate

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

//go:embed weights.yaml
var weightsYAML []byte

// FieldWeight names one scored field and how a human should remedy its absence.
type FieldWeight struct {
	Field       string `yaml:"field"`
	Remediation string `yaml:"remediation"`
}

// WeightTable partitions a document type's fields into critical and important.
type WeightTable struct {
	Critical  []FieldWeight `yaml:"critical"`
	Important []FieldWeight `yaml:"important"`
}

type weightsFile struct {
	Types map[string]WeightTable `yaml:"types"`
}

// loadWeightTables parses the embedded per-type field weight tables.
// Every classifiable type must have a table; "default" covers the rest.
func loadWeightTables() (map[constants.DocumentType]WeightTable, WeightTable, error) {
	var f weightsFile
	if err := yaml.Unmarshal(weightsYAML, &f); err != nil {
		return nil, WeightTable{}, fmt.Errorf("parse weights.yaml: %w", err)
	}
	def, ok := f.Types["default"]
	if !ok {
		return nil, WeightTable{}, fmt.Errorf("weights.yaml: missing default table")
	}
	tables := make(map[constants.DocumentType]WeightTable, len(f.Types))
	for name, table := range f.Types {
		if name == "default" {
			continue
		}
		docType := constants.ParseDocumentType(name)
		if !docType.IsClassifiable() {
			return nil, WeightTable{}, fmt.Errorf("weights.yaml: %q is not a classifiable type", name)
		}
		tables[docType] = table
	}
	for _, t := range constants.ClassifiableTypes {
		if _, ok := tables[t]; !ok {
			return nil, WeightTable{}, fmt.Errorf("weights.yaml: missing table for %s", t)
		}
	}
	return tables, def, nil
}

// fieldPresent resolves a weight-table field name against the document.
// Absence means absent, never zero: a zero VAT rate counts as present.
func fieldPresent(doc *entity.CanonicalDocument, field string) bool {
	switch field {
	case "document_number":
		return doc.Metadata.DocumentNumber != nil
	case "parties":
		return len(doc.Parties) > 0
	case "line_items":
		for i := range doc.LineItems {
			if !blankItem(&doc.LineItems[i]) {
				return true
			}
		}
		return false
	case "issue_date":
		return doc.Dates.IssueDate != nil
	case "submission_deadline":
		return doc.Dates.SubmissionDeadline != nil
	case "delivery_date":
		return doc.Dates.DeliveryDate != nil
	case "validity_date":
		return doc.Dates.ValidityDate != nil
	case "currency":
		return doc.Terms.Currency != nil
	case "vat_rate":
		return doc.Terms.VATRate != nil
	case "payment_terms":
		return doc.Terms.PaymentTerms != nil
	case "warranty_period":
		return doc.Terms.WarrantyPeriod != nil
	case "incoterm":
		return doc.Terms.Incoterm != nil
	}
	return false
}

func blankItem(item *entity.LineItem) bool {
	hasDesc := item.Description != nil && strings.TrimSpace(*item.Description) != ""
	return !hasDesc && item.Quantity == nil && item.UnitPrice == nil && item.TotalPrice == nil
}
