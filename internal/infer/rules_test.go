package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

func newTestInferencer() *Inferencer {
	return NewInferencer(DefaultRules(common.LoadConfig().Inference))
}

func itemDoc(items ...entity.LineItem) *entity.CanonicalDocument {
	doc := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	doc.LineItems = items
	return doc
}

func signalsFor(signals []entity.InferenceSignal, rule string) []entity.InferenceSignal {
	var out []entity.InferenceSignal
	for _, s := range signals {
		if s.RuleName == rule {
			out = append(out, s)
		}
	}
	return out
}

func TestCalculateTotalsFillsMissingTotal(t *testing.T) {
	doc := itemDoc(entity.LineItem{LineNumber: 1, Quantity: f64(4), UnitPrice: f64(25)})

	doc, signals := newTestInferencer().Infer(doc, "")
	sigs := signalsFor(signals, "calculate_totals")
	require.Len(t, sigs, 1)
	require.NotNil(t, doc.LineItems[0].TotalPrice)
	assert.Equal(t, 100.0, *doc.LineItems[0].TotalPrice)
	assert.False(t, sigs[0].RequiresReview)
}

func TestCalculateTotalsIdempotentWhenConsistent(t *testing.T) {
	doc := itemDoc(entity.LineItem{LineNumber: 1, Quantity: f64(4), UnitPrice: f64(25), TotalPrice: f64(100)})

	_, signals := newTestInferencer().Infer(doc, "")
	assert.Empty(t, signalsFor(signals, "calculate_totals"))
}

func TestCalculateTotalsFlagsMismatchWithoutOverwriting(t *testing.T) {
	doc := itemDoc(entity.LineItem{LineNumber: 1, Quantity: f64(4), UnitPrice: f64(25), TotalPrice: f64(150)})

	doc, signals := newTestInferencer().Infer(doc, "")
	sigs := signalsFor(signals, "calculate_totals")
	require.Len(t, sigs, 1)
	assert.True(t, sigs[0].RequiresReview)
	assert.Equal(t, 150.0, *doc.LineItems[0].TotalPrice, "stated total must not be overwritten")
}

func TestCalculateTaxEmitsAdvisorySignal(t *testing.T) {
	doc := itemDoc(entity.LineItem{LineNumber: 1, Quantity: f64(2), UnitPrice: f64(500), TotalPrice: f64(1000)})
	doc.Terms.VATRate = f64(15)

	_, signals := newTestInferencer().Infer(doc, "")
	sigs := signalsFor(signals, "calculate_tax")
	require.Len(t, sigs, 1)
	assert.Equal(t, "tax_amount", sigs[0].FieldName)
	assert.Equal(t, "150.00", sigs[0].InferredValue)
}

func TestInferCurrencyFromSingleMention(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	text := "Grand total 288,000 SAR payable on delivery.\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	require.NotNil(t, doc.Terms.Currency)
	assert.Equal(t, "SAR", *doc.Terms.Currency)

	sigs := signalsFor(signals, "infer_currency")
	require.Len(t, sigs, 1)
	assert.Contains(t, sigs[0].Evidence, "SAR")
}

func TestInferCurrencyConfidenceScalesWithMentions(t *testing.T) {
	inf := newTestInferencer()

	one := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	_, sigOne := inf.Infer(one, "Total: 100 SAR\n")
	many := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	_, sigMany := inf.Infer(many, "Total: 100 SAR\nVAT: 15 SAR\nGrand total: 115 SAR\n")

	first := signalsFor(sigOne, "infer_currency")
	second := signalsFor(sigMany, "infer_currency")
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Greater(t, second[0].Confidence, first[0].Confidence)
}

func TestInferCurrencySkipsWhenPresent(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	doc.Terms.Currency = str("USD")

	_, signals := newTestInferencer().Infer(doc, "prices in EUR EUR EUR")
	assert.Empty(t, signalsFor(signals, "infer_currency"))
	assert.Equal(t, "USD", *doc.Terms.Currency)
}

func TestDetectDiscounts(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypeQuotation)
	text := "Subtotal: 10,000.00\nA discount of 5% applies to the order value.\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	require.NotNil(t, doc.Terms.DiscountPercentage)
	assert.Equal(t, 5.0, *doc.Terms.DiscountPercentage)
	require.Len(t, signalsFor(signals, "detect_discounts"), 1)
}

func TestInferPaymentTerms(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypePO)
	text := "Payment: 30% advance on order confirmation, milestone-based payments thereafter.\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	assert.True(t, doc.Terms.HasAdvancePayment)
	require.NotNil(t, doc.Terms.AdvancePaymentPercentage)
	assert.Equal(t, 30.0, *doc.Terms.AdvancePaymentPercentage)
	assert.True(t, doc.Terms.MilestoneBasedPayment)
	assert.Len(t, signalsFor(signals, "infer_payment_terms"), 2)
}

func TestDetectDeliveryTerms(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypePO)
	text := "Delivery terms: CIF Dammam Port, partial shipment not allowed.\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	require.NotNil(t, doc.Terms.Incoterm)
	assert.Equal(t, constants.IncotermCIF, *doc.Terms.Incoterm)
	require.Len(t, signalsFor(signals, "detect_delivery_terms"), 1)
}

func TestDetectDeliveryTermsNeedsShippingContext(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypePO)
	text := "Contact our DDP representative for branding questions.\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	assert.Nil(t, doc.Terms.Incoterm)
	assert.Empty(t, signalsFor(signals, "detect_delivery_terms"))
}

func TestInferPartiesBackfillsContact(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypeRFQ)
	doc.Parties[constants.RoleIssuer] = &entity.Party{Name: "Gulf Construction Co."}
	text := "Issued on behalf of Gulf Construction Co.\nContact: tenders@gulfcon.example, +966 11 200 4000\n"

	doc, signals := newTestInferencer().Infer(doc, text)
	issuer := doc.Parties[constants.RoleIssuer]
	require.NotNil(t, issuer.Email)
	assert.Equal(t, "tenders@gulfcon.example", *issuer.Email)
	require.NotNil(t, issuer.Phone)
	assert.Len(t, signalsFor(signals, "infer_parties"), 2)
}

func TestValidateLineItemsFlagsWithoutRepairing(t *testing.T) {
	doc := itemDoc(
		entity.LineItem{LineNumber: 1, Description: str("Valid item"), Quantity: f64(2), UnitPrice: f64(10), TotalPrice: f64(20)},
		entity.LineItem{LineNumber: 2, Description: str("Zero qty"), Quantity: f64(0), UnitPrice: f64(10)},
		entity.LineItem{LineNumber: 3},
		entity.LineItem{LineNumber: 4, Description: str("Negative price"), Quantity: f64(1), UnitPrice: f64(-5)},
	)

	doc, signals := newTestInferencer().Infer(doc, "")
	sigs := signalsFor(signals, "validate_line_items")
	require.Len(t, sigs, 3)
	for _, s := range sigs {
		assert.True(t, s.RequiresReview)
	}
	// flagged, not repaired
	assert.Equal(t, 0.0, *doc.LineItems[1].Quantity)
	assert.Equal(t, -5.0, *doc.LineItems[3].UnitPrice)
}

func TestRulesNeverErrorOnEmptyInput(t *testing.T) {
	doc := entity.NewCanonicalDocument(constants.DocTypeUnknown)
	doc, signals := newTestInferencer().Infer(doc, "")
	require.NotNil(t, doc)
	assert.Empty(t, signals)
}
