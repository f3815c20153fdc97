package engine

import (
	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// DefaultWeights is the starting weight vector before pain-point and stage
// modifiers are applied.
func DefaultWeights() WeightProfile {
	return WeightProfile{
		Fit:         0.25,
		Popularity:  0.25,
		Cost:        0.20,
		AI:          0.15,
		Integration: 0.15,
	}
}

// painModifiers shift weight toward the dimension that addresses each pain.
// Deltas are signed and deliberately small; normalization absorbs the rest.
var painModifiers = map[assessment.PainPoint]WeightProfile{
	assessment.PainTooManyTools: {
		Integration: 0.15, Popularity: -0.05, Cost: -0.05, AI: -0.05,
	},
	assessment.PainThingsSlip: {
		Integration: 0.10, AI: 0.05, Popularity: -0.10, Cost: -0.05,
	},
	assessment.PainTooExpensive: {
		Cost: 0.15, Popularity: -0.05, AI: -0.05, Integration: -0.05,
	},
	assessment.PainManualWork: {
		AI: 0.15, Fit: -0.05, Popularity: -0.05, Cost: -0.05,
	},
	assessment.PainHardToFindInfo: {
		Integration: 0.10, Fit: 0.05, Popularity: -0.10, AI: -0.05,
	},
	assessment.PainSlowShipping: {
		AI: 0.10, Integration: 0.05, Cost: -0.10, Popularity: -0.05,
	},
}

var stageModifiers = map[catalog.Stage]WeightProfile{
	catalog.StageBootstrapping: {Cost: 0.10, Popularity: -0.05, AI: -0.05},
	catalog.StageSeed:          {AI: 0.05, Popularity: -0.05},
	catalog.StageGrowth:        {Integration: 0.05, Popularity: 0.05, Cost: -0.10},
	catalog.StageScale:         {Integration: 0.10, Popularity: 0.05, Cost: -0.10, AI: -0.05},
}

// BuildWeightProfile converts declared pain points and growth stage into a
// normalized weight vector. It always succeeds: with no pain points it
// returns the normalized defaults.
func BuildWeightProfile(painPoints []assessment.PainPoint, stage catalog.Stage) WeightProfile {
	w := DefaultWeights()
	for _, p := range painPoints {
		if mod, ok := painModifiers[p]; ok {
			w = w.add(mod)
		}
	}
	if mod, ok := stageModifiers[stage]; ok {
		w = w.add(mod)
	}
	return normalize(w)
}

func normalize(w WeightProfile) WeightProfile {
	w.Fit = clampZero(w.Fit)
	w.Popularity = clampZero(w.Popularity)
	w.Cost = clampZero(w.Cost)
	w.AI = clampZero(w.AI)
	w.Integration = clampZero(w.Integration)

	sum := w.Sum()
	if sum <= 0 {
		// Every dimension was clamped away; fall back to defaults.
		return DefaultWeights()
	}
	w.Fit /= sum
	w.Popularity /= sum
	w.Cost /= sum
	w.AI /= sum
	w.Integration /= sum
	return w
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
