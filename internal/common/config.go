package common

import (
	"os"
	"strconv"

	"github.com/Knotcreativ/kraftd-extract/constants"
)

// Config holds all pipeline configuration
type Config struct {
	Classifier ClassifierConfig
	Inference  InferenceConfig
	Validation ValidationConfig
}

// ClassifierConfig holds classification thresholds
type ClassifierConfig struct {
	NearTieMargin       float64
	MinScore            float64
	HintConfidenceFloor float64
}

// InferenceConfig holds inference-rule tolerances
type InferenceConfig struct {
	ReconcileTolerance float64
	ReconcileRelative  float64
}

// ValidationConfig holds scoring weights and thresholds
type ValidationConfig struct {
	ReadinessThreshold float64
	CompletenessWeight float64
	QualityWeight      float64
	OutlierMultiplier  float64
	AnomalyPenalty     float64
}

// LoadConfig loads configuration from environment variables, falling back to
// the shared constants. Every threshold the pipeline branches on lives here.
func LoadConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			NearTieMargin:       getEnvAsFloat64("CLASSIFY_NEAR_TIE_MARGIN", constants.NearTieMargin),
			MinScore:            getEnvAsFloat64("CLASSIFY_MIN_SCORE", constants.MinClassifyScore),
			HintConfidenceFloor: getEnvAsFloat64("CLASSIFY_HINT_FLOOR", constants.HintConfidenceFloor),
		},
		Inference: InferenceConfig{
			ReconcileTolerance: getEnvAsFloat64("INFER_RECONCILE_TOLERANCE", constants.ReconcileTolerance),
			ReconcileRelative:  getEnvAsFloat64("INFER_RECONCILE_RELATIVE", constants.ReconcileRelative),
		},
		Validation: ValidationConfig{
			ReadinessThreshold: getEnvAsFloat64("VALIDATE_READINESS_THRESHOLD", constants.ReadinessThreshold),
			CompletenessWeight: getEnvAsFloat64("VALIDATE_COMPLETENESS_WEIGHT", constants.CompletenessWeight),
			QualityWeight:      getEnvAsFloat64("VALIDATE_QUALITY_WEIGHT", constants.QualityWeight),
			OutlierMultiplier:  getEnvAsFloat64("VALIDATE_OUTLIER_MULTIPLIER", constants.OutlierMultiplier),
			AnomalyPenalty:     getEnvAsFloat64("VALIDATE_ANOMALY_PENALTY", constants.AnomalyPenalty),
		},
	}
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Classifier.NearTieMargin < 0 || c.Classifier.NearTieMargin >= 1 {
		return NewAppError("CONFIG_ERROR", "near-tie margin must be in [0,1)", ErrInvalidInput)
	}
	if c.Validation.CompletenessWeight+c.Validation.QualityWeight <= 0 {
		return NewAppError("CONFIG_ERROR", "score blend weights must be positive", ErrInvalidInput)
	}
	if c.Validation.ReadinessThreshold < 0 || c.Validation.ReadinessThreshold > 100 {
		return NewAppError("CONFIG_ERROR", "readiness threshold must be in [0,100]", ErrInvalidInput)
	}
	return nil
}
