// Package validate scores a mapped document's completeness and quality,
// detects anomalies, and decides whether it can proceed through automated
// processing without a human in the loop.
package validate

import (
	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Validator applies the per-type field weight tables.
type Validator struct {
	cfg          common.ValidationConfig
	tables       map[constants.DocumentType]WeightTable
	defaultTable WeightTable
}

// NewValidator builds a validator from the embedded weight tables.
func NewValidator(cfg common.ValidationConfig) (*Validator, error) {
	tables, def, err := loadWeightTables()
	if err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg, tables: tables, defaultTable: def}, nil
}

// Validate scores the document. signals is the inferencer's audit trail;
// pass nil when validating a document that skipped inference — review flags
// from signals simply won't contribute.
func (v *Validator) Validate(doc *entity.CanonicalDocument, signals []entity.InferenceSignal) entity.ValidationResult {
	table, ok := v.tables[doc.Metadata.DocumentType]
	if !ok {
		table = v.defaultTable
	}

	var result entity.ValidationResult

	presentWeight, totalWeight := 0.0, 0.0
	for _, fw := range table.Critical {
		totalWeight += constants.CriticalFieldWeight
		if fieldPresent(doc, fw.Field) {
			presentWeight += constants.CriticalFieldWeight
		} else {
			result.CriticalGaps = append(result.CriticalGaps, entity.FieldGap{
				FieldName:   fw.Field,
				Remediation: fw.Remediation,
			})
		}
	}
	for _, fw := range table.Important {
		totalWeight += constants.ImportantFieldWeight
		if fieldPresent(doc, fw.Field) {
			presentWeight += constants.ImportantFieldWeight
		} else {
			result.ImportantGaps = append(result.ImportantGaps, entity.FieldGap{
				FieldName:   fw.Field,
				Remediation: fw.Remediation,
			})
		}
	}
	if totalWeight > 0 {
		result.CompletenessScore = 100 * presentWeight / totalWeight
	}

	result.Anomalies = v.detectAnomalies(doc)

	quality := 100*doc.Confidence.OverallConfidence - v.cfg.AnomalyPenalty*float64(len(result.Anomalies))
	result.DataQualityScore = clamp(quality, 0, 100)

	blend := v.cfg.CompletenessWeight + v.cfg.QualityWeight
	result.OverallScore = (v.cfg.CompletenessWeight*result.CompletenessScore +
		v.cfg.QualityWeight*result.DataQualityScore) / blend

	signalReview := false
	for _, s := range signals {
		if s.RequiresReview {
			signalReview = true
			result.Warnings = append(result.Warnings, s.RuleName+": "+s.Evidence)
		}
	}

	result.ReadyForProcessing = len(result.CriticalGaps) == 0 &&
		len(result.Anomalies) == 0 &&
		result.OverallScore >= v.cfg.ReadinessThreshold
	result.RequiresManualReview = len(result.CriticalGaps) > 0 ||
		len(result.Anomalies) > 0 ||
		signalReview

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
