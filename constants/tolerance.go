package constants

// Shared scoring and tolerance constants. Defined once so the classifier,
// inferencer and validator cannot drift apart; env overrides live in
// internal/common.Config.
const (
	// NearTieMargin: top-two normalized classification scores closer than
	// this are a tie, classified MIXED.
	NearTieMargin = 0.10

	// MinClassifyScore: raw winning score below this is UNKNOWN.
	MinClassifyScore = 3.0

	// HintConfidenceFloor: confidence floor when a user hint breaks a tie.
	HintConfidenceFloor = 0.60

	// ReconcileTolerance: absolute floor for |total - qty*unit| checks.
	// The effective tolerance is max(ReconcileTolerance, ReconcileRelative*total).
	ReconcileTolerance = 0.01
	ReconcileRelative  = 0.005

	// OutlierMultiplier: a unit price this many times above (or below) the
	// document's own median unit price is an anomaly.
	OutlierMultiplier = 10.0

	// MinPricedItemsForOutlier: outlier detection needs at least this many
	// priced line items to establish a median.
	MinPricedItemsForOutlier = 3

	// ReadinessThreshold: minimum overall score for ready_for_processing.
	ReadinessThreshold = 70.0

	// Overall score blend.
	CompletenessWeight = 0.6
	QualityWeight      = 0.4

	// Field weights in the completeness calculation.
	CriticalFieldWeight  = 3.0
	ImportantFieldWeight = 1.0

	// AnomalyPenalty: points subtracted from data quality per anomaly.
	AnomalyPenalty = 15.0
)
