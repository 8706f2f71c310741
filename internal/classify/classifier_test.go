package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
)

const rfqText = `REQUEST FOR QUOTATION
RFQ-2024-001
Date: 15 March 2024
Submission Deadline: 29 March 2024
From: Gulf Construction Co.

1 | Steel rebar 16mm | 120 | ton | 2400.00 | 288000.00
2 | Structural bolts M24 | 450 | set | 310.00 | 139500.00
3 | Shuttering plywood 18mm | 600 | pcs | 95.00 | 57000.00

Evaluation criteria: technical 70, commercial 30.
`

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(common.LoadConfig().Classifier)
	require.NoError(t, err)
	return c
}

func TestClassifyRFQ(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(rfqText, "rfq.txt", "")
	assert.Equal(t, constants.DocTypeRFQ, res.DocumentType)
	assert.Greater(t, res.Confidence, 0.8)
	assert.NotEmpty(t, res.Reasoning)
	assert.False(t, res.RequiresReview)
}

func TestClassifyFormatIndependence(t *testing.T) {
	c := newTestClassifier(t)

	extensions := []string{"doc.pdf", "doc.docx", "doc.xlsx", "doc.jpg", "doc.txt", ""}
	first := c.Classify(rfqText, extensions[0], "")
	for _, name := range extensions[1:] {
		res := c.Classify(rfqText, name, "")
		assert.Equal(t, first.DocumentType, res.DocumentType, "file name %q changed the verdict", name)
		assert.Equal(t, first.Confidence, res.Confidence)
	}
}

func TestClassifyNearTieIsMixed(t *testing.T) {
	c := newTestClassifier(t)

	text := "PURCHASE ORDER\nBILL OF QUANTITIES\n"
	res := c.Classify(text, "", "")
	assert.Equal(t, constants.DocTypeMixed, res.DocumentType)
	assert.True(t, res.RequiresReview)
}

func TestClassifyHintBreaksTie(t *testing.T) {
	c := newTestClassifier(t)

	text := "PURCHASE ORDER\nBILL OF QUANTITIES\n"
	res := c.Classify(text, "", constants.DocTypePO)
	assert.Equal(t, constants.DocTypePO, res.DocumentType)
	assert.GreaterOrEqual(t, res.Confidence, 0.6)
	assert.False(t, res.RequiresReview)

	res = c.Classify(text, "", constants.DocTypeBOQ)
	assert.Equal(t, constants.DocTypeBOQ, res.DocumentType)
}

func TestClassifyHintIgnoredWithoutTie(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(rfqText, "", constants.DocTypeInvoice)
	assert.Equal(t, constants.DocTypeRFQ, res.DocumentType, "hint must not override a clear winner")
}

func TestClassifyBelowFloorIsUnknown(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{"", "abc", "hello there, nothing procurement about this"} {
		res := c.Classify(text, "", "")
		assert.Equal(t, constants.DocTypeUnknown, res.DocumentType, "text %q", text)
		assert.True(t, res.RequiresReview)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	c := newTestClassifier(t)

	first := c.Classify(rfqText, "a.txt", "")
	second := c.Classify(rfqText, "a.txt", "")
	assert.Equal(t, first, second)
}

func TestDetectItemTable(t *testing.T) {
	assert.Equal(t, 3, detectItemTable(rfqText))
	assert.Equal(t, 0, detectItemTable("no table here\njust prose\n"))

	tabbed := "1\tWidget\t10\t5.00\t50.00\n2\tGadget\t4\t2.50\t10.00\n"
	assert.Equal(t, 2, detectItemTable(tabbed))
}
