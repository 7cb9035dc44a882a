package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidWeights is returned when a weight table does not fill every
// category to exactly 100 points.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Criterion keys.
const (
	KeyGHGIntensity        = "ghg_intensity"
	KeyRenewableEnergy     = "renewable_energy"
	KeyClimateTargets      = "climate_targets"
	KeyWasteManagement     = "waste_management"
	KeyWaterManagement     = "water_management"
	KeyHealthSafety        = "health_safety"
	KeyTrainingDevelopment = "training_development"
	KeyDiversityInclusion  = "diversity_inclusion"
	KeyFairWages           = "fair_wages"
	KeyESGPolicy           = "esg_policy"
	KeyCodeOfConduct       = "code_of_conduct"
	KeyAntiCorruption      = "anti_corruption"
	KeyDataPrivacy         = "data_privacy"
	KeyBoardOversight      = "board_oversight"
	KeyESGReporting        = "esg_reporting"
	KeySupplyChain         = "supply_chain"
)

// criterionCategory assigns every criterion key to its pillar.
var criterionCategory = map[string]Category{
	KeyGHGIntensity:        Environmental,
	KeyRenewableEnergy:     Environmental,
	KeyClimateTargets:      Environmental,
	KeyWasteManagement:     Environmental,
	KeyWaterManagement:     Environmental,
	KeyHealthSafety:        Social,
	KeyTrainingDevelopment: Social,
	KeyDiversityInclusion:  Social,
	KeyFairWages:           Social,
	KeyESGPolicy:           Governance,
	KeyCodeOfConduct:       Governance,
	KeyAntiCorruption:      Governance,
	KeyDataPrivacy:         Governance,
	KeyBoardOversight:      Governance,
	KeyESGReporting:        Governance,
	KeySupplyChain:         Governance,
}

// CategoryOf returns the pillar a criterion key belongs to.
func CategoryOf(key string) (Category, bool) {
	c, ok := criterionCategory[key]
	return c, ok
}

// Weights maps each criterion key to its maximum points.
type Weights map[string]float64

// Defaults returns the default weight table.
func Defaults() Weights {
	return Weights{
		// Environmental
		KeyGHGIntensity:    30,
		KeyRenewableEnergy: 20,
		KeyClimateTargets:  25,
		KeyWasteManagement: 15,
		KeyWaterManagement: 10,

		// Social
		KeyHealthSafety:        35,
		KeyTrainingDevelopment: 25,
		KeyDiversityInclusion:  20,
		KeyFairWages:           20,

		// Governance
		KeyESGPolicy:      20,
		KeyCodeOfConduct:  15,
		KeyAntiCorruption: 15,
		KeyDataPrivacy:    20,
		KeyBoardOversight: 10,
		KeyESGReporting:   10,
		KeySupplyChain:    10,
	}
}

// Merge returns a copy of w with the given overrides applied.
func (w Weights) Merge(overrides map[string]float64) Weights {
	out := make(Weights, len(w)+len(overrides))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Sum returns the total points available in a category.
func (w Weights) Sum(c Category) float64 {
	var total float64
	for k, v := range w {
		if criterionCategory[k] == c {
			total += v
		}
	}
	return total
}

// Validate checks that every criterion is present and non-negative and that
// each category sums to exactly 100.
func (w Weights) Validate() error {
	var problems []string
	for key := range criterionCategory {
		v, ok := w[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing weight %q", key))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			problems = append(problems, fmt.Sprintf("weight %q must be a finite non-negative number", key))
		}
	}
	for key := range w {
		if _, ok := criterionCategory[key]; !ok {
			problems = append(problems, fmt.Sprintf("unknown criterion %q", key))
		}
	}
	if len(problems) == 0 {
		for _, c := range Categories {
			if sum := w.Sum(c); math.Abs(sum-100) > 1e-9 {
				problems = append(problems, fmt.Sprintf("category %s sums to %g, want 100", c, sum))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidWeights, strings.Join(problems, "; "))
	}
	return nil
}
