package constants

import "strings"

// DocumentType is the canonical procurement document type.
type DocumentType string

// Stable values (these exact strings appear in emitted JSON).
const (
	DocTypeRFQ       DocumentType = "RFQ"       // request for quotation
	DocTypeBOQ       DocumentType = "BOQ"       // bill of quantities
	DocTypeQuotation DocumentType = "QUOTATION" // supplier quotation
	DocTypePO        DocumentType = "PO"        // purchase order
	DocTypeInvoice   DocumentType = "INVOICE"
	DocTypeContract  DocumentType = "CONTRACT"
	DocTypeMixed     DocumentType = "MIXED"   // multiple types scored comparably high
	DocTypeUnknown   DocumentType = "UNKNOWN" // no type cleared the confidence floor
)

// ClassifiableTypes are the types the classifier scores. MIXED and UNKNOWN
// are verdicts, never candidates.
var ClassifiableTypes = []DocumentType{
	DocTypeRFQ, DocTypeBOQ, DocTypeQuotation, DocTypePO, DocTypeInvoice, DocTypeContract,
}

// ParseDocumentType maps free-form input to a DocumentType.
// Unrecognized values map to DocTypeUnknown rather than a raw string.
func ParseDocumentType(s string) DocumentType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RFQ", "REQUEST_FOR_QUOTATION":
		return DocTypeRFQ
	case "BOQ", "BILL_OF_QUANTITIES":
		return DocTypeBOQ
	case "QUOTATION", "QUOTE":
		return DocTypeQuotation
	case "PO", "PURCHASE_ORDER":
		return DocTypePO
	case "INVOICE":
		return DocTypeInvoice
	case "CONTRACT":
		return DocTypeContract
	case "MIXED":
		return DocTypeMixed
	default:
		return DocTypeUnknown
	}
}

// IsClassifiable reports whether t is a scoreable candidate type.
func (t DocumentType) IsClassifiable() bool {
	for _, c := range ClassifiableTypes {
		if t == c {
			return true
		}
	}
	return false
}
