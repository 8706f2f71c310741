package pipeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

const rfqText = `REQUEST FOR QUOTATION
RFQ-2024-001
Date: 15 March 2024
Submission Deadline: 29 March 2024

From: Gulf Construction Co.
procurement@gulfcon.example

To: Al Noor Trading LLC

Currency: SAR

1 | Steel rebar 16mm | 120 | ton | 2400.00 | 288000.00
2 | Structural bolts M24 | 450 | set | 310.00 | 139500.00
3 | Shuttering plywood 18mm | 600 | pcs | 95.00 | 57000.00

Evaluation criteria: technical 70, commercial 30.
Payment terms: net 30 days from delivery
`

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p, err := NewProcessor(nil, common.LoadConfig())
	require.NoError(t, err)
	return p
}

func TestProcessRFQEndToEnd(t *testing.T) {
	p := newTestProcessor(t)

	res := p.Process(rfqText, "rfq-2024-001.pdf")
	require.True(t, res.Success)
	require.NotNil(t, res.Document)
	require.NotNil(t, res.Classification)
	require.NotNil(t, res.Validation)

	assert.Equal(t, constants.DocTypeRFQ, res.Classification.DocumentType)
	assert.Greater(t, res.ClassifierConfidence, 0.8)
	assert.Equal(t, constants.DocTypeRFQ, res.Document.Metadata.DocumentType)
	assert.Len(t, res.Document.LineItems, 3)
	assert.Greater(t, res.Validation.CompletenessScore, 70.0)
	assert.Equal(t, 3, res.Summary.LineItemCount)
	assert.NotEqual(t, uuid.Nil, res.Document.DocumentID)

	require.NotNil(t, res.Document.Metadata.DocumentNumber)
	assert.Equal(t, "RFQ-2024-001", *res.Document.Metadata.DocumentNumber)
	require.NotNil(t, res.Document.Dates.SubmissionDeadline)
}

func TestProcessNeverThrows(t *testing.T) {
	p := newTestProcessor(t)

	large := strings.Repeat("General terms and conditions apply to this order.\n", 200) // ~10KB
	for _, text := range []string{"", "abc", large} {
		res := p.Process(text, "")
		assert.True(t, res.Success, "text length %d", len(text))
		require.NotNil(t, res.Validation)
		assert.True(t, res.Summary.NeedsManualReview)
		assert.False(t, res.Summary.IsReadyForProcessing)
	}
}

func TestProcessNonTextIsFatal(t *testing.T) {
	p := newTestProcessor(t)

	for _, input := range []string{"PK\x00\x03binary", string([]byte{0xff, 0xfe, 0x00})} {
		res := p.Process(input, "blob.bin")
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
		assert.Nil(t, res.Document, "no partial document on the fatal path")
	}
}

func TestProcessDeterminism(t *testing.T) {
	p := newTestProcessor(t)

	first := p.Process(rfqText, "rfq.txt")
	second := p.Process(rfqText, "rfq.txt")

	// only the per-run id and timestamp may differ
	first.Document.DocumentID = uuid.Nil
	second.Document.DocumentID = uuid.Nil
	first.ProcessedAt = time.Time{}
	second.ProcessedAt = time.Time{}
	assert.Equal(t, first, second)
}

func TestProcessResultMatchesSchema(t *testing.T) {
	p := newTestProcessor(t)

	for _, text := range []string{rfqText, "", "short"} {
		res := p.Process(text, "doc.txt")
		out, err := json.Marshal(res)
		require.NoError(t, err)
		require.NoError(t, entity.ValidateJSONAgainstSchema(entity.BuildExtractionResultSchema(), out))
	}
}

func TestProcessIncompletePO(t *testing.T) {
	p := newTestProcessor(t)

	text := "PURCHASE ORDER\nPlease supply the goods below.\n\nsome unstructured scribble\n"
	res := p.Process(text, "")
	require.True(t, res.Success)
	assert.Equal(t, constants.DocTypePO, res.Classification.DocumentType)
	assert.False(t, res.Validation.ReadyForProcessing)
	assert.True(t, res.Validation.RequiresManualReview)
	assert.NotEmpty(t, res.Validation.CriticalGaps)
}

func TestStageEntryPointsCompose(t *testing.T) {
	p := newTestProcessor(t)

	cls := p.Classify(rfqText, "rfq.txt", "")
	doc := p.Map(rfqText)
	doc.Metadata.DocumentType = cls.DocumentType
	doc, signals := p.Infer(doc, rfqText)
	vr := p.Validate(doc, signals)

	full := p.Process(rfqText, "rfq.txt")
	assert.Equal(t, cls.DocumentType, full.Classification.DocumentType)
	assert.Equal(t, vr.CompletenessScore, full.Validation.CompletenessScore)
	assert.Equal(t, vr.OverallScore, full.Validation.OverallScore)
}
