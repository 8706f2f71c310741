package mapper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var (
	docNumberLabelRe  = regexp.MustCompile(`(?im)^[ \t]*(?:document|doc|ref(?:erence)?)\s*(?:no|number|#)?\s*[:.]?\s*([A-Z]{1,6}[-/]?[A-Z0-9][A-Z0-9/\-]{2,})\s*$`)
	docNumberInlineRe = regexp.MustCompile(`\b((?:RFQ|BOQ|PO|INV|QTN|QUO|CTR)[-/]\d[\dA-Z/\-]*)\b`)
	revisionRe        = regexp.MustCompile(`(?i)\brev(?:ision)?\.?\s*[:#]?\s*([A-Z0-9]{1,4})\b`)

	currencyLabelRe = regexp.MustCompile(`(?i)\bcurrency\s*[:.]?\s*([A-Z]{3})\b`)
	vatRe           = regexp.MustCompile(`(?i)\b(?:vat|tax)\b\D{0,20}?(\d{1,2}(?:\.\d+)?)\s*%`)
	paymentTermsRe  = regexp.MustCompile(`(?im)^[ \t]*payment\s+terms?\s*[:.]?\s*(.{3,120}?)\s*$`)
	warrantyRe      = regexp.MustCompile(`(?i)warranty(?:\s+period)?\s*[:.]?\s*([^\n.;]{3,80})`)
)

// extractDocumentNumber finds a labeled or inline document reference, plus a
// revision marker when present.
func extractDocumentNumber(doc *entity.CanonicalDocument, text string) {
	if m := docNumberInlineRe.FindStringSubmatch(text); m != nil {
		num := strings.TrimSpace(m[1])
		doc.Metadata.DocumentNumber = &num
	} else if m := docNumberLabelRe.FindStringSubmatch(text); m != nil {
		num := strings.TrimSpace(m[1])
		doc.Metadata.DocumentNumber = &num
	}
	if m := revisionRe.FindStringSubmatch(text); m != nil {
		rev := m[1]
		doc.Metadata.RevisionNumber = &rev
	}
}

// extractTerms captures currency, VAT rate, and the raw payment/warranty
// phrases. Semantic interpretation of those phrases is the inferencer's job.
func extractTerms(doc *entity.CanonicalDocument, text string) {
	if m := currencyLabelRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if constants.IsCurrencyCode(code) {
			doc.Terms.Currency = &code
		}
	}
	if doc.Terms.Currency == nil {
		// fall back to the currency the line items priced in
		for i := range doc.LineItems {
			if doc.LineItems[i].Currency != nil {
				c := *doc.LineItems[i].Currency
				doc.Terms.Currency = &c
				break
			}
		}
	}

	if m := vatRe.FindStringSubmatch(text); m != nil {
		if rate, err := strconv.ParseFloat(m[1], 64); err == nil {
			doc.Terms.VATRate = &rate
		}
	}
	if m := paymentTermsRe.FindStringSubmatch(text); m != nil {
		terms := strings.TrimSpace(m[1])
		doc.Terms.PaymentTerms = &terms
	}
	if m := warrantyRe.FindStringSubmatch(text); m != nil {
		w := strings.TrimSpace(m[1])
		doc.Terms.WarrantyPeriod = &w
	}
}
