package sim

import "math"

// Beta is the normalized distance below which every pair repels regardless
// of the rule matrix.
const Beta = 0.3

// RuleForce maps a normalized distance in [0, 1] and a rule coefficient in
// [-1, 1] to a radial force magnitude. Positive values attract.
func RuleForce(normalizedDistance, ruleValue float64) float64 {
	switch {
	case normalizedDistance < Beta:
		return normalizedDistance/Beta - 1
	case normalizedDistance < 1:
		return ruleValue * (1 - math.Abs(2*normalizedDistance-1-Beta)/(1-Beta))
	default:
		return 0
	}
}

// FrictionFactor is the per-step velocity retention for a friction half-life.
func FrictionFactor(dt, halfLife float64) float64 {
	return math.Pow(0.5, dt/halfLife)
}
