// Package queue ranks waiting patients by the Orchestra Priority Index
// (OPI), a composite urgency score blending clinical risk, elapsed wait
// time and deterioration probability.
package queue

import (
	"math"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

// OPI weights. Clinical risk dominates both by weight and by the wait
// term's ceiling: the wait bonus caps at 40 points (reached around 27
// minutes), so an indefinitely waiting low-acuity patient can never
// outrank a freshly arrived critical one.
const (
	weightClinical      = 0.6
	weightWait          = 0.2
	weightDeterioration = 0.2

	waitMultiplier = 1.5
	waitBonusCap   = 40.0
)

// Score computes the OPI. Total over the numeric domain: negative wait
// (clock skew) floors at 0, and unassessed patients pass 0 for the
// clinical inputs, which naturally sorts them low.
func Score(clinicalRisk, waitMinutes, deteriorationProb float64) float64 {
	if waitMinutes < 0 {
		waitMinutes = 0
	}
	waitTerm := math.Min(waitMinutes*waitMultiplier, waitBonusCap)
	return clinicalRisk*weightClinical + waitTerm*weightWait + deteriorationProb*weightDeterioration
}

// Tier is the display-only urgency band derived from OPI and risk level.
// It never feeds back into the score.
type Tier string

const (
	TierCritical Tier = "Critical"
	TierHigh     Tier = "High"
	TierMedium   Tier = "Medium"
	TierLow      Tier = "Low"
)

// TierFor classifies a ranked patient. The risk level, when present, can
// pull a patient into a higher band than the OPI alone would.
func TierFor(opi float64, level *hospital.RiskLevel) Tier {
	switch {
	case levelIs(level, hospital.RiskCritical) || opi > 85:
		return TierCritical
	case levelIs(level, hospital.RiskHigh) || opi > 65:
		return TierHigh
	case levelIs(level, hospital.RiskMedium) || opi > 40:
		return TierMedium
	default:
		return TierLow
	}
}

func levelIs(level *hospital.RiskLevel, want hospital.RiskLevel) bool {
	return level != nil && *level == want
}
