package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knotcreativ/kraftd-extract/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, constants.NearTieMargin, cfg.Classifier.NearTieMargin)
	assert.Equal(t, constants.MinClassifyScore, cfg.Classifier.MinScore)
	assert.Equal(t, constants.ReconcileTolerance, cfg.Inference.ReconcileTolerance)
	assert.Equal(t, constants.ReadinessThreshold, cfg.Validation.ReadinessThreshold)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CLASSIFY_NEAR_TIE_MARGIN", "0.25")
	t.Setenv("VALIDATE_READINESS_THRESHOLD", "80")

	cfg := LoadConfig()
	assert.Equal(t, 0.25, cfg.Classifier.NearTieMargin)
	assert.Equal(t, 80.0, cfg.Validation.ReadinessThreshold)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigIgnoresGarbageEnv(t *testing.T) {
	t.Setenv("CLASSIFY_NEAR_TIE_MARGIN", "not-a-number")
	cfg := LoadConfig()
	assert.Equal(t, constants.NearTieMargin, cfg.Classifier.NearTieMargin)
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cfg := LoadConfig()
	cfg.Classifier.NearTieMargin = 1.5
	require.Error(t, cfg.Validate())

	cfg = LoadConfig()
	cfg.Validation.ReadinessThreshold = 250
	require.Error(t, cfg.Validate())
}
