package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

func TestBuildWeightProfileNoInputsReturnsDefaults(t *testing.T) {
	got := BuildWeightProfile(nil, "")
	assert.Equal(t, DefaultWeights(), got)
	assert.InDelta(t, 1.0, got.Sum(), 1e-9)
}

func TestBuildWeightProfileAlwaysNormalized(t *testing.T) {
	pains := []assessment.PainPoint{
		assessment.PainTooManyTools,
		assessment.PainThingsSlip,
		assessment.PainTooExpensive,
		assessment.PainManualWork,
		assessment.PainHardToFindInfo,
		assessment.PainSlowShipping,
	}
	stages := []catalog.Stage{
		catalog.StageBootstrapping, catalog.StageSeed, catalog.StageGrowth, catalog.StageScale,
	}
	for _, stage := range stages {
		for i := range pains {
			got := BuildWeightProfile(pains[:i+1], stage)
			require.InDelta(t, 1.0, got.Sum(), 1e-9, "stage=%s pains=%d", stage, i+1)
			for _, v := range []float64{got.Fit, got.Popularity, got.Cost, got.AI, got.Integration} {
				require.GreaterOrEqual(t, v, 0.0)
			}
		}
	}
}

func TestBuildWeightProfilePainShiftsWeight(t *testing.T) {
	defaults := DefaultWeights()

	expensive := BuildWeightProfile([]assessment.PainPoint{assessment.PainTooExpensive}, "")
	assert.Greater(t, expensive.Cost, defaults.Cost)

	manual := BuildWeightProfile([]assessment.PainPoint{assessment.PainManualWork}, "")
	assert.Greater(t, manual.AI, defaults.AI)

	sprawl := BuildWeightProfile([]assessment.PainPoint{assessment.PainTooManyTools}, "")
	assert.Greater(t, sprawl.Integration, defaults.Integration)
}

func TestBuildWeightProfileRepeatedPainClampsAtZero(t *testing.T) {
	// Stacking the same pain drives other dimensions negative before the
	// clamp; the result must still be a valid distribution.
	pains := []assessment.PainPoint{
		assessment.PainTooExpensive, assessment.PainTooExpensive,
		assessment.PainTooExpensive, assessment.PainTooExpensive,
		assessment.PainTooExpensive,
	}
	got := BuildWeightProfile(pains, catalog.StageBootstrapping)
	require.InDelta(t, 1.0, got.Sum(), 1e-9)
	assert.GreaterOrEqual(t, got.Popularity, 0.0)
	assert.GreaterOrEqual(t, got.AI, 0.0)
	assert.Greater(t, got.Cost, got.Fit)
}

func TestStageModifiersApplied(t *testing.T) {
	boot := BuildWeightProfile(nil, catalog.StageBootstrapping)
	scale := BuildWeightProfile(nil, catalog.StageScale)
	assert.Greater(t, boot.Cost, scale.Cost)
	assert.Greater(t, scale.Integration, boot.Integration)
}
