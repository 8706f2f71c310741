// Package pipeline coordinates the four extraction stages over one document:
// classify, map, infer, validate. Each stage is a pure function of its
// inputs; the processor owns sequencing, the document id, and the final
// result assembly.
package pipeline

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/classify"
	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
	"github.com/Knotcreativ/kraftd-extract/internal/infer"
	"github.com/Knotcreativ/kraftd-extract/internal/mapper"
	"github.com/Knotcreativ/kraftd-extract/internal/validate"
)

// Processor runs the fixed stage sequence and aggregates one ExtractionResult.
type Processor struct {
	logger     *slog.Logger
	classifier *classify.Classifier
	mapper     *mapper.Mapper
	inferencer *infer.Inferencer
	validator  *validate.Validator
}

// NewProcessor wires the four stages from config. Stage internals come from
// the embedded signal and weight tables.
func NewProcessor(logger *slog.Logger, cfg *common.Config) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	classifier, err := classify.NewClassifier(cfg.Classifier)
	if err != nil {
		return nil, common.WrapError(err, "build classifier")
	}
	validator, err := validate.NewValidator(cfg.Validation)
	if err != nil {
		return nil, common.WrapError(err, "build validator")
	}
	return &Processor{
		logger:     logger,
		classifier: classifier,
		mapper:     mapper.NewMapper(),
		inferencer: infer.NewInferencer(infer.DefaultRules(cfg.Inference)),
		validator:  validator,
	}, nil
}

// Classify exposes the classification stage on its own.
func (p *Processor) Classify(text, fileName string, userHint constants.DocumentType) entity.ClassificationResult {
	return p.classifier.Classify(text, fileName, userHint)
}

// Map exposes the mapping stage on its own.
func (p *Processor) Map(text string) *entity.CanonicalDocument {
	return p.mapper.Map(text)
}

// Infer exposes the inference stage on its own.
func (p *Processor) Infer(doc *entity.CanonicalDocument, text string) (*entity.CanonicalDocument, []entity.InferenceSignal) {
	return p.inferencer.Infer(doc, text)
}

// Validate exposes the validation stage on its own.
func (p *Processor) Validate(doc *entity.CanonicalDocument, signals []entity.InferenceSignal) entity.ValidationResult {
	return p.validator.Validate(doc, signals)
}

// Process runs the full sequence. Malformed, empty, or ambiguous text is a
// successful run with a low-confidence, heavily-flagged result; only
// non-text input takes the fatal path.
func (p *Processor) Process(text, sourceFile string) entity.ExtractionResult {
	result := entity.ExtractionResult{ProcessedAt: time.Now().UTC()}
	if sourceFile != "" {
		result.SourceFile = &sourceFile
	}

	if !isText(text) {
		msg := common.ErrNotText.Error()
		result.Error = &msg
		p.logger.Error("pipeline.fatal", "source_file", sourceFile, "error", msg)
		return result
	}

	cls := p.classifier.Classify(text, sourceFile, "")

	doc := p.mapper.Map(text)
	doc.DocumentID = uuid.New()
	doc.Metadata.DocumentType = cls.DocumentType

	doc, signals := p.inferencer.Infer(doc, text)
	vr := p.validator.Validate(doc, signals)

	result.Success = true
	result.Document = doc
	result.Classification = &cls
	result.ClassifierConfidence = cls.Confidence
	result.Signals = signals
	result.Validation = &vr
	result.Summary = entity.Summary{
		IsReadyForProcessing: vr.ReadyForProcessing,
		NeedsManualReview:    vr.RequiresManualReview || cls.RequiresReview,
		FieldsMapped:         fieldsMapped(doc),
		InferencesMade:       len(signals),
		LineItemCount:        len(doc.LineItems),
	}

	p.logger.Info("pipeline.ok",
		"document_id", doc.DocumentID,
		"document_type", cls.DocumentType,
		"classifier_confidence", cls.Confidence,
		"overall_score", vr.OverallScore,
		"ready", vr.ReadyForProcessing,
		"needs_review", result.Summary.NeedsManualReview,
		"line_items", len(doc.LineItems),
		"signals", len(signals),
	)
	return result
}

// isText rejects input the pipeline cannot even attempt: embedded NUL bytes
// or mostly-invalid UTF-8 are binary content, not a sparse document.
func isText(s string) bool {
	if strings.ContainsRune(s, '\x00') {
		return false
	}
	return utf8.ValidString(s)
}

// fieldsMapped counts the mapper's critical fields that produced a match.
func fieldsMapped(doc *entity.CanonicalDocument) int {
	present := 0
	if doc.Metadata.DocumentNumber != nil {
		present++
	}
	if len(doc.Parties) > 0 {
		present++
	}
	d := doc.Dates
	if d.IssueDate != nil || d.SubmissionDeadline != nil || d.DeliveryDate != nil || d.ValidityDate != nil {
		present++
	}
	if len(doc.LineItems) > 0 {
		present++
	}
	if doc.Terms.Currency != nil {
		present++
	}
	return present
}
