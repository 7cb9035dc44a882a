// Package calibration verifies the calculator against published DEFRA 2023
// and IEA 2023 reference values.
package calibration

import (
	"fmt"
	"math"

	"github.com/esgcopilot/esgcore/pkg/emissions"
)

// DefaultTolerancePct is the relative tolerance for rounding differences.
const DefaultTolerancePct = 1.0

// Check compares one calculated value with its reference.
type Check struct {
	Section      string  `json:"section"`
	Name         string  `json:"name"`
	Got          float64 `json:"got"`
	Expected     float64 `json:"expected"`
	TolerancePct float64 `json:"tolerance_pct"`
	Source       string  `json:"source,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// Passed reports whether Got is within TolerancePct of Expected. A zero
// expectation requires |Got| < 0.001.
func (c Check) Passed() bool {
	if c.Expected == 0 {
		return math.Abs(c.Got) < 0.001
	}
	return c.DiffPct() <= c.TolerancePct
}

// DiffPct is the relative difference in percent, or 0 for a zero expectation.
func (c Check) DiffPct() float64 {
	if c.Expected == 0 {
		return 0
	}
	return math.Abs(c.Got-c.Expected) / c.Expected * 100
}

// Result is the outcome of a suite run.
type Result struct {
	Checks   []Check `json:"checks"`
	Failures int     `json:"failures"`
}

// Passed reports whether every check passed.
func (r Result) Passed() bool { return r.Failures == 0 }

// Failed returns the failing checks.
func (r Result) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed() {
			out = append(out, c)
		}
	}
	return out
}

// Section titles in run order.
const (
	SectionStationary = "Scope 1: stationary combustion (DEFRA 2023)"
	SectionMobile     = "Scope 1: company vehicles (DEFRA 2023)"
	SectionGrid       = "Scope 2: purchased electricity (IEA 2023, location-based)"
	SectionTravel     = "Scope 3: business travel (DEFRA 2023 Table 6)"
	SectionCommuting  = "Scope 3: employee commuting (DEFRA 2023 mixed-mode)"
	SectionAdditivity = "Additivity: total == scope1 + scope2 + scope3"
)

// Run executes the full suite against calc.
func Run(calc *emissions.Calculator) Result {
	var checks []Check
	for _, group := range [][]Check{
		stationary(calc),
		mobile(calc),
		grid(calc),
		travel(calc),
		commuting(calc),
		additivity(calc),
	} {
		checks = append(checks, group...)
	}

	r := Result{Checks: checks}
	for _, c := range checks {
		if !c.Passed() {
			r.Failures++
		}
	}
	return r
}

func scope1Only(calc *emissions.Calculator, in emissions.Scope1Input) emissions.Report {
	return calc.Calculate(in, emissions.Scope2Input{CountryCode: "DK"}, emissions.Scope3Input{})
}

func scope3Only(calc *emissions.Calculator, in emissions.Scope3Input) emissions.Report {
	return calc.Calculate(emissions.Scope1Input{}, emissions.Scope2Input{CountryCode: "DK"}, in)
}

func check(section, name string, got, expected float64, source string) Check {
	return Check{
		Section:      section,
		Name:         name,
		Got:          got,
		Expected:     expected,
		TolerancePct: DefaultTolerancePct,
		Source:       source,
	}
}

func stationary(calc *emissions.Calculator) []Check {
	return []Check{
		check(SectionStationary, "Natural gas (1,000 m3)",
			scope1Only(calc, emissions.Scope1Input{NaturalGasM3: 1000}).Scope1TotalKg, 2042.03,
			"DEFRA 2023 Table 1, natural gas 2.04203 kg CO2e/m3"),
		check(SectionStationary, "Diesel (1,000 litres)",
			scope1Only(calc, emissions.Scope1Input{DieselLiters: 1000}).Scope1TotalKg, 2687.40,
			"DEFRA 2023 Table 1, diesel 2.68740 kg CO2e/litre"),
		check(SectionStationary, "Petrol (1,000 litres)",
			scope1Only(calc, emissions.Scope1Input{PetrolLiters: 1000}).Scope1TotalKg, 2313.80,
			"DEFRA 2023 Table 1, petrol 2.31380 kg CO2e/litre"),
		check(SectionStationary, "LPG (1,000 litres)",
			scope1Only(calc, emissions.Scope1Input{LPGLiters: 1000}).Scope1TotalKg, 1514.69,
			"DEFRA 2023 Table 1, LPG 1.51469 kg CO2e/litre"),
		check(SectionStationary, "Coal (1,000 kg)",
			scope1Only(calc, emissions.Scope1Input{CoalKg: 1000}).Scope1TotalKg, 2423.06,
			"DEFRA 2023 Table 1, industrial coal 2.42306 kg CO2e/kg"),
	}
}

func mobile(calc *emissions.Calculator) []Check {
	return []Check{
		check(SectionMobile, "Company car avg (10,000 km)",
			scope1Only(calc, emissions.Scope1Input{CompanyCarKm: 10000}).Scope1TotalKg, 1710,
			"DEFRA 2023 Table 3, average car 0.171 kg CO2e/km"),
		check(SectionMobile, "Company van avg (10,000 km)",
			scope1Only(calc, emissions.Scope1Input{CompanyVanKm: 10000}).Scope1TotalKg, 2400,
			"DEFRA 2023 Table 3, average van 0.240 kg CO2e/km"),
		check(SectionMobile, "HGV truck (10,000 km)",
			scope1Only(calc, emissions.Scope1Input{CompanyTruckKm: 10000}).Scope1TotalKg, 9130,
			"DEFRA 2023 Table 4, HGV rigid >3.5t 0.913 kg CO2e/km"),
	}
}

// gridReferences is ordered from the most to the least carbon-intensive grid.
var gridReferences = []struct {
	country string
	factor  float64
}{
	{"PL", 0.773},
	{"DE", 0.366},
	{"DK", 0.154},
	{"FR", 0.052},
	{"SE", 0.013},
}

func grid(calc *emissions.Calculator) []Check {
	var checks []Check
	got := make([]float64, len(gridReferences))
	for i, ref := range gridReferences {
		r := calc.Calculate(emissions.Scope1Input{}, emissions.Scope2Input{ElectricityKWh: 1000, CountryCode: ref.country}, emissions.Scope3Input{})
		got[i] = r.Scope2TotalKg
		checks = append(checks, check(SectionGrid, fmt.Sprintf("%s 1,000 kWh", ref.country),
			r.Scope2TotalKg, ref.factor*1000,
			fmt.Sprintf("IEA 2023, %s grid factor %.3f kg CO2e/kWh", ref.country, ref.factor)))
	}

	inversions := 0
	for i := 1; i < len(got); i++ {
		if got[i] >= got[i-1] {
			inversions++
		}
	}
	c := check(SectionGrid, "Grid intensity ordering PL > DE > DK > FR > SE", float64(inversions), 0,
		"IEA 2023 relative grid intensities")
	c.Note = "value is the number of out-of-order neighbours"
	return append(checks, c)
}

func travel(calc *emissions.Calculator) []Check {
	return []Check{
		check(SectionTravel, "Short-haul flight (1,000 pkm)",
			scope3Only(calc, emissions.Scope3Input{AirShortHaulKm: 1000}).Scope3TotalKg, 255,
			"DEFRA 2023 Table 6, short-haul economy 0.255 kg CO2e/pkm"),
		check(SectionTravel, "Long-haul flight (1,000 pkm)",
			scope3Only(calc, emissions.Scope3Input{AirLongHaulKm: 1000}).Scope3TotalKg, 195,
			"DEFRA 2023 Table 6, long-haul economy 0.195 kg CO2e/pkm"),
		check(SectionTravel, "Rail (1,000 pkm)",
			scope3Only(calc, emissions.Scope3Input{RailKm: 1000}).Scope3TotalKg, 35,
			"DEFRA 2023 Table 6, rail average 0.035 kg CO2e/pkm"),
	}
}

func commuting(calc *emissions.Calculator) []Check {
	r := scope3Only(calc, emissions.Scope3Input{
		EmployeeCount:      10,
		AvgCommuteKmOneWay: 10,
		CommuteDaysPerYear: 220,
	})
	c := check(SectionCommuting, "Commuting: 10 employees, 10 km, 220 days", r.Scope3TotalKg, 6380,
		"DEFRA 2023, mixed mode average 0.145 kg CO2e/km")
	c.TolerancePct = 5
	c.Note = "10 emp × 10 km × 2 × 220 days × 0.145 = 6,380 kg CO2e"
	return []Check{c}
}

func additivity(calc *emissions.Calculator) []Check {
	r := calc.Calculate(
		emissions.Scope1Input{NaturalGasM3: 5000, DieselLiters: 2000, CompanyCarKm: 50000},
		emissions.Scope2Input{ElectricityKWh: 80000, CountryCode: "DK"},
		emissions.Scope3Input{
			AirShortHaulKm:         15000,
			EmployeeCount:          25,
			AvgCommuteKmOneWay:     12,
			CommuteDaysPerYear:     emissions.DefaultCommuteDays,
			PurchasedGoodsSpendEUR: 200000,
			IndustryCode:           "technology",
		},
	)
	c := check(SectionAdditivity, "total_kg == scope1 + scope2 + scope3", r.TotalKg,
		r.Scope1TotalKg+r.Scope2TotalKg+r.Scope3TotalKg, "internal consistency")
	c.TolerancePct = 0.001
	return []Check{c}
}
