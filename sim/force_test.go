package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleForceOutsideRange(t *testing.T) {
	for _, d := range []float64{1, 1.0000001, 1.5, 10, math.Inf(1)} {
		for _, r := range []float64{-1, -0.3, 0, 0.7, 1} {
			assert.Zero(t, RuleForce(d, r), "d=%g r=%g", d, r)
		}
	}
}

func TestRuleForceContinuousAtBeta(t *testing.T) {
	for _, r := range []float64{-1, -0.5, 0, 0.5, 1} {
		assert.InDelta(t, 0, RuleForce(Beta, r), 1e-12)
		below := math.Nextafter(Beta, 0)
		assert.InDelta(t, 0, RuleForce(below, r), 1e-12)
	}
}

func TestRuleForceCore(t *testing.T) {
	tests := []struct {
		d, want float64
	}{
		{0, -1},
		{0.15, -0.5},
		{0.2, 0.2/0.3 - 1},
	}
	for _, tt := range tests {
		for _, r := range []float64{-1, 0, 1} {
			assert.InDelta(t, tt.want, RuleForce(tt.d, r), 1e-12, "d=%g r=%g", tt.d, r)
		}
	}
}

func TestRuleForceLobe(t *testing.T) {
	center := (1 + Beta) / 2
	assert.InDelta(t, 0.8, RuleForce(center, 0.8), 1e-12)
	assert.InDelta(t, -0.4, RuleForce(center, -0.4), 1e-12)
	assert.InDelta(t, 0, RuleForce(0.6, 0), 1e-12)

	// symmetric around the center, decaying to zero at both ends
	assert.InDelta(t, RuleForce(center-0.1, 1), RuleForce(center+0.1, 1), 1e-12)
	assert.InDelta(t, 0, RuleForce(math.Nextafter(1, 0), 1), 1e-9)
	assert.Greater(t, RuleForce(0.5, 1), 0.0)
	assert.Less(t, RuleForce(0.5, -1), 0.0)
}

func TestRuleForceBounded(t *testing.T) {
	for d := 0.0; d < 1.2; d += 0.01 {
		for _, r := range []float64{-1, -0.25, 0.25, 1} {
			f := RuleForce(d, r)
			assert.GreaterOrEqual(t, f, -1.0)
			assert.LessOrEqual(t, f, 1.0)
		}
	}
}

func TestFrictionFactor(t *testing.T) {
	assert.InDelta(t, 0.5, FrictionFactor(0.06, 0.06), 1e-12)
	assert.InDelta(t, 1, FrictionFactor(0, 0.06), 1e-12)
	assert.InDelta(t, math.Pow(0.5, 0.01/0.06), FrictionFactor(0.01, 0.06), 1e-15)
}
