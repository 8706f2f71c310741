// Package infer applies independent business rules to a mapped document,
// filling gaps and flagging inconsistencies. Rules run in a fixed order;
// the first rule to set a field wins, later rules may still emit advisory
// signals. A rule that finds no evidence emits nothing and never errors.
package infer

import (
	"strings"

	"github.com/Knotcreativ/kraftd-extract/internal/common"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Rule is one independent inference over the document and its source text.
// Apply may mutate doc in place when it fills a previously-absent field.
type Rule interface {
	Name() string
	Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal
}

// DefaultRules returns the standard rule set in its fixed execution order.
// Adding a rule means appending here; nothing dispatches on rule names.
func DefaultRules(cfg common.InferenceConfig) []Rule {
	return []Rule{
		&calculateTotals{tolerance: cfg.ReconcileTolerance, relative: cfg.ReconcileRelative},
		&calculateTax{},
		&inferCurrency{},
		&detectDiscounts{},
		&inferPaymentTerms{},
		&detectDeliveryTerms{},
		&inferParties{},
		&validateLineItems{},
	}
}

// Inferencer runs an ordered rule list over one document.
type Inferencer struct {
	rules []Rule
}

func NewInferencer(rules []Rule) *Inferencer {
	return &Inferencer{rules: rules}
}

// Infer applies every rule in order and returns the same document plus the
// accumulated audit trail. The document is exclusively owned by this call.
func (inf *Inferencer) Infer(doc *entity.CanonicalDocument, text string) (*entity.CanonicalDocument, []entity.InferenceSignal) {
	signals := make([]entity.InferenceSignal, 0, 8)
	for _, rule := range inf.rules {
		signals = append(signals, rule.Apply(doc, text)...)
	}
	return doc, signals
}

// condense collapses whitespace runs in matched evidence text.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
