package scoring

import (
	"fmt"
	"math"
)

// GHGIntensityCriterion rewards emissions per revenue at or below the
// industry benchmark.
type GHGIntensityCriterion struct {
	MaxPoints float64
}

func (c *GHGIntensityCriterion) Key() string        { return KeyGHGIntensity }
func (c *GHGIntensityCriterion) Name() string       { return "GHG intensity" }
func (c *GHGIntensityCriterion) Category() Category { return Environmental }
func (c *GHGIntensityCriterion) Max() float64       { return c.MaxPoints }

func (c *GHGIntensityCriterion) Evaluate(in *Input) CriterionResult {
	if !finite(in.RevenueEUR) || in.RevenueEUR <= 0 {
		return newResult(c, 0, "Revenue not reported",
			"GHG intensity cannot be assessed because revenue was not reported")
	}

	intensity := math.Max(0, finiteOr(in.TotalCO2eTonnes, 0)) / (in.RevenueEUR / 1e6)
	benchmark, industry := IntensityBenchmark(in.IndustryCode)
	ratio := intensity / benchmark

	var frac float64
	switch {
	case ratio <= 1:
		frac = 1
	case ratio <= 1.5:
		frac = 2.0 / 3
	case ratio <= 2:
		frac = 1.0 / 3
	}

	detail := fmt.Sprintf("%.1f tCO2e per M EUR vs %s benchmark of %g", intensity, industry, benchmark)
	gap := fmt.Sprintf("GHG intensity of %.1f tCO2e per M EUR revenue is above the %s benchmark of %g",
		intensity, industry, benchmark)
	return newResult(c, frac, detail, gap)
}

// RenewableEnergyCriterion scores the renewable share of purchased electricity.
type RenewableEnergyCriterion struct {
	MaxPoints float64
}

func (c *RenewableEnergyCriterion) Key() string        { return KeyRenewableEnergy }
func (c *RenewableEnergyCriterion) Name() string       { return "Renewable energy" }
func (c *RenewableEnergyCriterion) Category() Category { return Environmental }
func (c *RenewableEnergyCriterion) Max() float64       { return c.MaxPoints }

func (c *RenewableEnergyCriterion) Evaluate(in *Input) CriterionResult {
	pct := clamp(finiteOr(in.RenewableElectricityPct, 0), 0, 100)
	return newResult(c, pct/100,
		fmt.Sprintf("%.0f%% renewable electricity", pct),
		fmt.Sprintf("Only %.0f%% of electricity comes from renewable sources", pct))
}

// ClimateTargetsCriterion scores declared reduction commitments.
type ClimateTargetsCriterion struct {
	MaxPoints float64
}

func (c *ClimateTargetsCriterion) Key() string        { return KeyClimateTargets }
func (c *ClimateTargetsCriterion) Name() string       { return "Climate targets" }
func (c *ClimateTargetsCriterion) Category() Category { return Environmental }
func (c *ClimateTargetsCriterion) Max() float64       { return c.MaxPoints }

func (c *ClimateTargetsCriterion) Evaluate(in *Input) CriterionResult {
	switch {
	case in.HasNetZeroTarget:
		return newResult(c, 1, "Net-zero target declared", "")
	case in.HasEnergyReductionTarget:
		return newResult(c, 0.48, "Energy reduction target only",
			"Energy reduction target set but no net-zero or science-based climate target")
	default:
		return newResult(c, 0, "No climate target",
			"No GHG reduction or net-zero climate target set")
	}
}

// WasteManagementCriterion scores the waste policy and recycling rate. The
// recycling component reaches its maximum at 50% recycled.
type WasteManagementCriterion struct {
	MaxPoints float64
}

func (c *WasteManagementCriterion) Key() string        { return KeyWasteManagement }
func (c *WasteManagementCriterion) Name() string       { return "Waste management" }
func (c *WasteManagementCriterion) Category() Category { return Environmental }
func (c *WasteManagementCriterion) Max() float64       { return c.MaxPoints }

func (c *WasteManagementCriterion) Evaluate(in *Input) CriterionResult {
	var frac float64
	if in.HasWastePolicy {
		frac += 2.0 / 3
	}
	recycled := "recycling rate not reported"
	if in.WasteRecycledPct != nil {
		pct := clamp(finiteOr(*in.WasteRecycledPct, 0), 0, 100)
		frac += math.Min(pct, 50) / 50 / 3
		recycled = fmt.Sprintf("%.0f%% recycled", pct)
	}

	policy := "no policy"
	gap := "No documented waste management policy"
	if in.HasWastePolicy {
		policy = "policy in place"
		gap = "Waste recycling rate below 50% or not reported"
	}
	return newResult(c, frac, fmt.Sprintf("Waste %s, %s", policy, recycled), gap)
}

// WaterManagementCriterion scores the presence of a water use policy.
type WaterManagementCriterion struct {
	MaxPoints float64
}

func (c *WaterManagementCriterion) Key() string        { return KeyWaterManagement }
func (c *WaterManagementCriterion) Name() string       { return "Water management" }
func (c *WaterManagementCriterion) Category() Category { return Environmental }
func (c *WaterManagementCriterion) Max() float64       { return c.MaxPoints }

func (c *WaterManagementCriterion) Evaluate(in *Input) CriterionResult {
	if in.HasWaterPolicy {
		return newResult(c, 1, "Water policy in place", "")
	}
	return newResult(c, 0, "No water policy", "No water management policy")
}
