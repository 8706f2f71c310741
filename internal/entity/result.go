package entity

import (
	"time"

	"github.com/Knotcreativ/kraftd-extract/constants"
)

// ClassificationResult is the classifier's verdict. Produced once per
// document and never recomputed by later stages.
type ClassificationResult struct {
	DocumentType   constants.DocumentType `json:"document_type"`
	Confidence     float64                `json:"confidence"`
	Reasoning      []string               `json:"reasoning"`
	RequiresReview bool                   `json:"requires_review"`
}

// InferenceSignal is one audit record emitted by an inference rule.
type InferenceSignal struct {
	RuleName       string  `json:"rule_name"`
	FieldName      string  `json:"field_name"`
	InferredValue  string  `json:"inferred_value"`
	Confidence     float64 `json:"confidence"`
	Evidence       string  `json:"evidence"`
	RequiresReview bool    `json:"requires_review"`
}

// FieldGap is a missing field together with how a human should fix it.
type FieldGap struct {
	FieldName   string `json:"field_name"`
	Remediation string `json:"remediation"`
}

// ValidationResult is the validator's completeness and quality verdict.
type ValidationResult struct {
	CompletenessScore    float64    `json:"completeness_score"`
	DataQualityScore     float64    `json:"data_quality_score"`
	OverallScore         float64    `json:"overall_score"`
	CriticalGaps         []FieldGap `json:"critical_gaps,omitempty"`
	ImportantGaps        []FieldGap `json:"important_gaps,omitempty"`
	Anomalies            []string   `json:"anomalies,omitempty"`
	Warnings             []string   `json:"warnings,omitempty"`
	ReadyForProcessing   bool       `json:"ready_for_processing"`
	RequiresManualReview bool       `json:"requires_manual_review"`
}

// Summary is derived bookkeeping for the caller; it only restates what the
// validation result and signal list already say.
type Summary struct {
	IsReadyForProcessing bool `json:"is_ready_for_processing"`
	NeedsManualReview    bool `json:"needs_manual_review"`
	FieldsMapped         int  `json:"fields_mapped"`
	InferencesMade       int  `json:"inferences_made"`
	LineItemCount        int  `json:"line_item_count"`
}

// ExtractionResult is the pipeline's top-level output.
type ExtractionResult struct {
	Success              bool                  `json:"success"`
	Document             *CanonicalDocument    `json:"document,omitempty"`
	Classification       *ClassificationResult `json:"classification,omitempty"`
	ClassifierConfidence float64               `json:"classifier_confidence"`
	Signals              []InferenceSignal     `json:"signals,omitempty"`
	Validation           *ValidationResult     `json:"validation_result,omitempty"`
	Summary              Summary               `json:"summary"`
	SourceFile           *string               `json:"source_file,omitempty"`
	ProcessedAt          time.Time             `json:"processed_at"`
	Error                *string               `json:"error,omitempty"`
}
