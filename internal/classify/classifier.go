// Package classify scores normalized document text against per-type signal
// sets and decides the document type. The file name is provenance only; it
// never influences the decision.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Classifier scores text against the embedded signal tables.
type Classifier struct {
	cfg   common.ClassifierConfig
	table signalTable
}

// NewClassifier builds a classifier from the embedded signal tables.
func NewClassifier(cfg common.ClassifierConfig) (*Classifier, error) {
	table, err := loadSignalTable()
	if err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg, table: table}, nil
}

type typeScore struct {
	docType constants.DocumentType
	raw     float64
	matched []string
}

// Classify scores the text and returns the winning type with confidence and
// reasoning. fileName is accepted for provenance but deliberately unused in
// the decision. userHint only matters when it breaks a near-tie.
func (c *Classifier) Classify(text, fileName string, userHint constants.DocumentType) entity.ClassificationResult {
	_ = fileName // provenance only, format-agnostic contract

	lower := strings.ToLower(text)

	scores := make([]typeScore, 0, len(constants.ClassifiableTypes))
	for _, docType := range constants.ClassifiableTypes {
		ts := typeScore{docType: docType}
		for _, sig := range c.table[docType] {
			if ok, desc := sig.matches(text, lower); ok {
				ts.raw += sig.Weight
				ts.matched = append(ts.matched, fmt.Sprintf("%s: matched %s (+%.1f)", docType, desc, sig.Weight))
			}
		}
		scores = append(scores, ts)
	}

	// Highest raw score first; type table order breaks exact ties so the
	// result is deterministic.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].raw > scores[j].raw })
	first, second := scores[0], scores[1]

	if first.raw < c.cfg.MinScore {
		return entity.ClassificationResult{
			DocumentType:   constants.DocTypeUnknown,
			Confidence:     0,
			Reasoning:      []string{fmt.Sprintf("no type cleared the minimum score (best %s at %.1f)", first.docType, first.raw)},
			RequiresReview: true,
		}
	}

	reasoning := append([]string{}, first.matched...)

	// Near-tie: the runner-up is within the margin of the winner.
	closeness := second.raw / first.raw
	if closeness >= 1-c.cfg.NearTieMargin {
		if userHint == first.docType || userHint == second.docType {
			winner := first
			if userHint == second.docType {
				winner = second
				reasoning = append([]string{}, second.matched...)
			}
			confidence := 1 - closeness
			if confidence < c.cfg.HintConfidenceFloor {
				confidence = c.cfg.HintConfidenceFloor
			}
			reasoning = append(reasoning, fmt.Sprintf("near-tie between %s and %s resolved by caller hint %s", first.docType, second.docType, userHint))
			return entity.ClassificationResult{
				DocumentType: winner.docType,
				Confidence:   confidence,
				Reasoning:    reasoning,
			}
		}
		reasoning = append(reasoning, second.matched...)
		reasoning = append(reasoning, fmt.Sprintf("%s and %s scored comparably (%.1f vs %.1f)", first.docType, second.docType, first.raw, second.raw))
		return entity.ClassificationResult{
			DocumentType:   constants.DocTypeMixed,
			Confidence:     closeness,
			Reasoning:      reasoning,
			RequiresReview: true,
		}
	}

	// Confidence reflects how far the winner is ahead of the runner-up.
	confidence := 1 - closeness
	return entity.ClassificationResult{
		DocumentType: first.docType,
		Confidence:   confidence,
		Reasoning:    reasoning,
	}
}
