package emissions

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/esgcopilot/esgcore/pkg/refdata"
)

// Precision is the number of decimal places kept on line items and totals.
const Precision = 4

// Warning kinds, see ClassifyWarning.
const (
	WarningGridFallback            = "grid_fallback"
	WarningDistrictHeatingFallback = "district_heating_fallback"
	WarningIndustryFallback        = "industry_fallback"
	WarningOther                   = "other"
)

const (
	gridWarningPrefix     = "Grid emission factor not found"
	heatingWarningPrefix  = "District heating factor not found"
	industryWarningPrefix = "Industry code"
)

// ClassifyWarning returns the kind of a calculator warning message.
func ClassifyWarning(msg string) string {
	switch {
	case strings.HasPrefix(msg, gridWarningPrefix):
		return WarningGridFallback
	case strings.HasPrefix(msg, heatingWarningPrefix):
		return WarningDistrictHeatingFallback
	case strings.HasPrefix(msg, industryWarningPrefix):
		return WarningIndustryFallback
	default:
		return WarningOther
	}
}

// Calculator converts activity data into emissions using a fixed set of
// reference tables. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	tables *refdata.Tables
}

// New creates a Calculator backed by the given tables.
func New(tables *refdata.Tables) *Calculator {
	return &Calculator{tables: tables}
}

// Tables returns the reference tables the calculator was built with.
func (c *Calculator) Tables() *refdata.Tables {
	return c.tables
}

// Calculate computes Scope 1, 2 and 3 emissions. Non-positive and non-finite
// quantities are skipped without a line item.
func (c *Calculator) Calculate(s1 Scope1Input, s2 Scope2Input, s3 Scope3Input) Report {
	r := Report{
		Scope1Breakdown: Breakdown{},
		Scope2Breakdown: Breakdown{},
		Scope3Breakdown: Breakdown{},
		Warnings:        []string{},
	}

	c.scope1(s1, &r)
	c.scope2(s2, &r)
	c.scope3(s3, &r)

	r.Scope1TotalKg = sumKg(r.Scope1Breakdown)
	r.Scope2TotalKg = sumKg(r.Scope2Breakdown)
	r.Scope3TotalKg = sumKg(r.Scope3Breakdown)
	r.TotalKg = r.Scope1TotalKg + r.Scope2TotalKg + r.Scope3TotalKg
	return r
}

func (c *Calculator) scope1(d Scope1Input, r *Report) {
	add := func(key string, value float64, unit, factorKey string) {
		if !positive(value) {
			return
		}
		f, _ := c.tables.Fuel(factorKey)
		r.Scope1Breakdown[key] = newItem(key, value, unit, f)
	}

	add("natural_gas", d.NaturalGasM3, "m3", refdata.NaturalGas)
	add("diesel", d.DieselLiters, "liters", refdata.Diesel)
	add("petrol", d.PetrolLiters, "liters", refdata.Petrol)
	add("lpg", d.LPGLiters, "liters", refdata.LPG)
	add("heating_oil", d.HeatingOilLiters, "liters", refdata.HeatingOil)
	add("coal", d.CoalKg, "kg", refdata.Coal)
	add("biomass_wood_chips", d.BiomassWoodChipsKg, "kg", refdata.BiomassWoodChips)
	add("company_car", d.CompanyCarKm, "km", refdata.CompanyCar)
	add("company_van", d.CompanyVanKm, "km", refdata.CompanyVan)
	add("company_truck", d.CompanyTruckKm, "km", refdata.CompanyTruck)
}

func (c *Calculator) scope2(d Scope2Input, r *Report) {
	// Electricity and district heating resolve the country independently.
	if positive(d.ElectricityKWh) {
		f, applied, ok := c.tables.Grid(d.CountryCode)
		if !ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s for country '%s'. %s factor (%s kg CO2e/kWh) applied.",
				gridWarningPrefix, d.CountryCode, applied, formatFactor(f.Value)))
		}
		item := newItem("electricity", d.ElectricityKWh, "kWh", f)
		item.CountryApplied = applied
		r.Scope2Breakdown["electricity"] = item
	}

	if positive(d.DistrictHeatingKWh) {
		f, applied, ok := c.tables.DistrictHeating(d.CountryCode)
		if !ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s for country '%s'. %s factor (%s kg CO2e/kWh) applied.",
				heatingWarningPrefix, d.CountryCode, applied, formatFactor(f.Value)))
		}
		item := newItem("district_heating", d.DistrictHeatingKWh, "kWh", f)
		item.CountryApplied = applied
		r.Scope2Breakdown["district_heating"] = item
	}
}

func (c *Calculator) scope3(d Scope3Input, r *Report) {
	travel := func(key string, value float64, unit, factorKey string) {
		if !positive(value) {
			return
		}
		f, _ := c.tables.Travel(factorKey)
		item := newItem(key, value, unit, f)
		item.Scope3Category = CategoryBusinessTravel
		r.Scope3Breakdown[key] = item
	}

	// Cat 6: business travel
	travel("air_short_haul", d.AirShortHaulKm, "pkm", refdata.ShortHaulFlight)
	if positive(d.AirLongHaulKm) {
		pct := clamp(finiteOrZero(d.AirBusinessClassPct), 0, 100)
		businessKm := d.AirLongHaulKm * pct / 100
		economyKm := d.AirLongHaulKm - businessKm
		travel("air_long_haul_economy", economyKm, "pkm", refdata.LongHaulFlight)
		travel("air_long_haul_business", businessKm, "pkm", refdata.LongHaulFlightBusiness)
	}
	travel("rail", d.RailKm, "pkm", refdata.Rail)
	travel("rental_car", d.RentalCarKm, "km", refdata.RentalCar)
	travel("taxi", d.TaxiKm, "km", refdata.Taxi)

	// Cat 7: employee commuting. The blended mixed-mode factor stands in for
	// the per-mode split.
	if d.EmployeeCount > 0 && positive(d.AvgCommuteKmOneWay) {
		totalKm := float64(d.EmployeeCount) * d.AvgCommuteKmOneWay * 2 * float64(d.CommuteDaysPerYear)
		if positive(totalKm) {
			f, _ := c.tables.Commuting(refdata.CommuteMixedMode)
			item := newItem("employee_commuting", totalKm, "total_km", f)
			item.Scope3Category = CategoryCommuting
			item.Commuting = &CommutingDetails{
				Employees:   d.EmployeeCount,
				AvgOneWayKm: d.AvgCommuteKmOneWay,
				CommuteDays: d.CommuteDaysPerYear,
			}
			r.Scope3Breakdown["employee_commuting"] = item
		}
	}

	// Cat 1: purchased goods, spend-based
	if positive(d.PurchasedGoodsSpendEUR) {
		f, applied, ok := c.tables.Spend(d.IndustryCode)
		if !ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"%s '%s' not found in spend-based factors. '%s' factor (%s kg CO2e/EUR) applied.",
				industryWarningPrefix, d.IndustryCode, applied, formatFactor(f.Value)))
		}
		item := newItem("purchased_goods", d.PurchasedGoodsSpendEUR, "EUR", f)
		item.Scope3Category = CategoryPurchasedGoods
		item.Uncertainty = SpendUncertainty
		r.Scope3Breakdown["purchased_goods"] = item
	}
}

func newItem(key string, value float64, unit string, f refdata.Factor) LineItem {
	return LineItem{
		SourceKey:      key,
		KgCO2e:         roundKg(value * f.Value),
		InputValue:     value,
		InputUnit:      unit,
		FactorValue:    f.Value,
		FactorUnit:     f.Unit,
		SourceCitation: f.Source,
	}
}

// roundKg rounds to Precision places, half away from zero.
func roundKg(kg float64) float64 {
	if !isFinite(kg) {
		return 0
	}
	v, _ := decimal.NewFromFloat(kg).Round(Precision).Float64()
	return v
}

// sumKg adds the already rounded line items exactly and rounds the result.
func sumKg(bd Breakdown) float64 {
	total := decimal.Zero
	for _, item := range bd {
		total = total.Add(decimal.NewFromFloat(item.KgCO2e))
	}
	v, _ := total.Round(Precision).Float64()
	return v
}

func formatFactor(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func positive(v float64) bool {
	return isFinite(v) && v > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
