package scoring

import (
	"fmt"
	"math"
)

// HealthSafetyCriterion scores the health and safety policy (4/7 of the
// points) and the reported lost-time injury rate (up to 3/7).
type HealthSafetyCriterion struct {
	MaxPoints float64
}

func (c *HealthSafetyCriterion) Key() string        { return KeyHealthSafety }
func (c *HealthSafetyCriterion) Name() string       { return "Health & safety" }
func (c *HealthSafetyCriterion) Category() Category { return Social }
func (c *HealthSafetyCriterion) Max() float64       { return c.MaxPoints }

func (c *HealthSafetyCriterion) Evaluate(in *Input) CriterionResult {
	var sevenths float64
	if in.HasHealthSafetyPolicy {
		sevenths += 4
	}

	ltir := "LTIR not reported"
	if in.LostTimeInjuryRate != nil && finite(*in.LostTimeInjuryRate) {
		rate := *in.LostTimeInjuryRate
		ltir = fmt.Sprintf("LTIR %.2f", rate)
		switch {
		case rate <= 0:
			sevenths += 3
		case rate <= 1:
			sevenths += 2
		case rate <= 3:
			sevenths += 1
		}
	}

	var gap string
	switch {
	case !in.HasHealthSafetyPolicy:
		gap = "No formal health and safety policy"
	case in.LostTimeInjuryRate == nil:
		gap = "Lost-time injury rate not reported; health and safety performance cannot be verified"
	default:
		gap = "Lost-time injury rate above zero; strengthen health and safety incident prevention"
	}

	policy := "no policy"
	if in.HasHealthSafetyPolicy {
		policy = "policy in place"
	}
	return newResult(c, sevenths/7, fmt.Sprintf("H&S %s, %s", policy, ltir), gap)
}

// TrainingDevelopmentCriterion scores average training hours against a 40 hour
// target. A formal programme guarantees at least 40% of the points.
type TrainingDevelopmentCriterion struct {
	MaxPoints float64
}

func (c *TrainingDevelopmentCriterion) Key() string        { return KeyTrainingDevelopment }
func (c *TrainingDevelopmentCriterion) Name() string       { return "Training & development" }
func (c *TrainingDevelopmentCriterion) Category() Category { return Social }
func (c *TrainingDevelopmentCriterion) Max() float64       { return c.MaxPoints }

func (c *TrainingDevelopmentCriterion) Evaluate(in *Input) CriterionResult {
	hours := math.Max(0, finiteOr(in.AvgTrainingHoursPerEmployee, 0))
	frac := math.Min(hours/40, 1)
	if in.HasTrainingProgram {
		frac = math.Max(frac, 0.4)
	}

	gap := fmt.Sprintf("Average training of %.0f hours per employee is below 40 hours", hours)
	if !in.HasTrainingProgram && hours == 0 {
		gap = "No structured employee training programme"
	}
	return newResult(c, frac, fmt.Sprintf("%.0f training hours per employee", hours), gap)
}

// DiversityInclusionCriterion scores the D&I policy and female representation
// in management.
type DiversityInclusionCriterion struct {
	MaxPoints float64
}

func (c *DiversityInclusionCriterion) Key() string        { return KeyDiversityInclusion }
func (c *DiversityInclusionCriterion) Name() string       { return "Diversity & inclusion" }
func (c *DiversityInclusionCriterion) Category() Category { return Social }
func (c *DiversityInclusionCriterion) Max() float64       { return c.MaxPoints }

func (c *DiversityInclusionCriterion) Evaluate(in *Input) CriterionResult {
	var frac float64
	if in.HasDiversityPolicy {
		frac += 0.5
	}

	female := "female management share not reported"
	if in.FemaleManagementPct != nil && finite(*in.FemaleManagementPct) {
		pct := *in.FemaleManagementPct
		female = fmt.Sprintf("%.0f%% female management", pct)
		switch {
		case pct >= 40:
			frac += 0.5
		case pct >= 30:
			frac += 0.35
		case pct >= 20:
			frac += 0.2
		case pct > 0:
			frac += 0.1
		}
	}

	gap := "No diversity and inclusion policy"
	if in.HasDiversityPolicy {
		gap = "Female representation in management below 40% or not reported"
	}
	return newResult(c, frac, female, gap)
}
