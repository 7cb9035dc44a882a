// Package submission models a company's annual data submission and maps it
// onto calculator and scorer inputs.
package submission

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// ErrInvalidSubmission is returned by Validate for out-of-range answers.
var ErrInvalidSubmission = errors.New("invalid submission")

// Company is the reporting entity's profile.
type Company struct {
	Name          string  `json:"name" yaml:"name"`
	IndustryCode  string  `json:"industry_code" yaml:"industry_code"`
	CountryCode   string  `json:"country_code" yaml:"country_code"`
	EmployeeCount int     `json:"employee_count" yaml:"employee_count"`
	RevenueEUR    float64 `json:"revenue_eur" yaml:"revenue_eur"`
}

// Energy holds Scope 1 and Scope 2 activity data.
type Energy struct {
	NaturalGasM3       float64 `json:"natural_gas_m3" yaml:"natural_gas_m3"`
	DieselLiters       float64 `json:"diesel_liters" yaml:"diesel_liters"`
	PetrolLiters       float64 `json:"petrol_liters" yaml:"petrol_liters"`
	LPGLiters          float64 `json:"lpg_liters" yaml:"lpg_liters"`
	HeatingOilLiters   float64 `json:"heating_oil_liters" yaml:"heating_oil_liters"`
	CoalKg             float64 `json:"coal_kg" yaml:"coal_kg"`
	BiomassWoodChipsKg float64 `json:"biomass_wood_chips_kg" yaml:"biomass_wood_chips_kg"`
	CompanyCarKm       float64 `json:"company_car_km" yaml:"company_car_km"`
	CompanyVanKm       float64 `json:"company_van_km" yaml:"company_van_km"`
	CompanyTruckKm     float64 `json:"company_truck_km" yaml:"company_truck_km"`

	ElectricityKWh          float64 `json:"electricity_kwh" yaml:"electricity_kwh"`
	DistrictHeatingKWh      float64 `json:"district_heating_kwh" yaml:"district_heating_kwh"`
	RenewableElectricityPct float64 `json:"renewable_electricity_pct" yaml:"renewable_electricity_pct"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (e *Energy) total() float64 {
	var sum float64
	for _, v := range []float64{
		e.NaturalGasM3, e.DieselLiters, e.PetrolLiters, e.LPGLiters, e.HeatingOilLiters, e.CoalKg,
		e.BiomassWoodChipsKg, e.CompanyCarKm, e.CompanyVanKm, e.CompanyTruckKm,
		e.ElectricityKWh, e.DistrictHeatingKWh,
	} {
		if v > 0 && !math.IsInf(v, 0) {
			sum += v
		}
	}
	return sum
}

// Travel holds business travel (Cat 6) and commuting (Cat 7) data. The commute
// mode split is collected but the calculator uses a blended factor.
type Travel struct {
	AirShortHaulKm      float64 `json:"air_short_haul_km" yaml:"air_short_haul_km"`
	AirLongHaulKm       float64 `json:"air_long_haul_km" yaml:"air_long_haul_km"`
	AirBusinessClassPct float64 `json:"air_business_class_pct" yaml:"air_business_class_pct"`
	RailKm              float64 `json:"rail_km" yaml:"rail_km"`
	RentalCarKm         float64 `json:"rental_car_km" yaml:"rental_car_km"`
	TaxiKm              float64 `json:"taxi_km" yaml:"taxi_km"`

	AvgCommuteKmOneWay    float64  `json:"avg_commute_km_one_way" yaml:"avg_commute_km_one_way"`
	CommuteDaysPerYear    int      `json:"commute_days_per_year" yaml:"commute_days_per_year"` // 0 means 220
	CommuteModeCarPct     *float64 `json:"commute_mode_car_pct,omitempty" yaml:"commute_mode_car_pct,omitempty"`
	CommuteModeTransitPct *float64 `json:"commute_mode_transit_pct,omitempty" yaml:"commute_mode_transit_pct,omitempty"`
	CommuteModeActivePct  *float64 `json:"commute_mode_active_pct,omitempty" yaml:"commute_mode_active_pct,omitempty"`
}

// Procurement holds spend data for spend-based Cat 1 estimates.
type Procurement struct {
	PurchasedGoodsSpendEUR   float64 `json:"purchased_goods_spend_eur" yaml:"purchased_goods_spend_eur"`
	SupplierCount            *int    `json:"supplier_count,omitempty" yaml:"supplier_count,omitempty"`
	HasSupplierCodeOfConduct bool    `json:"has_supplier_code_of_conduct" yaml:"has_supplier_code_of_conduct"`
	TopSpendCategory         string  `json:"top_spend_category,omitempty" yaml:"top_spend_category,omitempty"`
	Notes                    string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Policies holds the policy questionnaire answers.
type Policies struct {
	HasEnergyReductionTarget bool     `json:"has_energy_reduction_target" yaml:"has_energy_reduction_target"`
	HasNetZeroTarget         bool     `json:"has_net_zero_target" yaml:"has_net_zero_target"`
	NetZeroTargetYear        *int     `json:"net_zero_target_year,omitempty" yaml:"net_zero_target_year,omitempty"`
	WasteRecycledPct         *float64 `json:"waste_recycled_pct,omitempty" yaml:"waste_recycled_pct,omitempty"`
	HasWastePolicy           bool     `json:"has_waste_policy" yaml:"has_waste_policy"`
	HasWaterPolicy           bool     `json:"has_water_policy" yaml:"has_water_policy"`

	HasHealthSafetyPolicy       bool     `json:"has_health_safety_policy" yaml:"has_health_safety_policy"`
	LostTimeInjuryRate          *float64 `json:"lost_time_injury_rate,omitempty" yaml:"lost_time_injury_rate,omitempty"`
	HasTrainingProgram          bool     `json:"has_training_program" yaml:"has_training_program"`
	AvgTrainingHoursPerEmployee *float64 `json:"avg_training_hours_per_employee,omitempty" yaml:"avg_training_hours_per_employee,omitempty"`
	HasDiversityPolicy          bool     `json:"has_diversity_policy" yaml:"has_diversity_policy"`
	FemaleManagementPct         *float64 `json:"female_management_pct,omitempty" yaml:"female_management_pct,omitempty"`
	LivingWageCommitment        bool     `json:"living_wage_commitment" yaml:"living_wage_commitment"`

	HasESGPolicy             bool `json:"has_esg_policy" yaml:"has_esg_policy"`
	HasCodeOfConduct         bool `json:"has_code_of_conduct" yaml:"has_code_of_conduct"`
	HasAntiCorruptionPolicy  bool `json:"has_anti_corruption_policy" yaml:"has_anti_corruption_policy"`
	HasDataPrivacyPolicy     bool `json:"has_data_privacy_policy" yaml:"has_data_privacy_policy"`
	HasBoardESGOversight     bool `json:"has_board_esg_oversight" yaml:"has_board_esg_oversight"`
	ESGReportingYear         *int `json:"esg_reporting_year,omitempty" yaml:"esg_reporting_year,omitempty"`
	SupplyChainCodeOfConduct bool `json:"supply_chain_code_of_conduct" yaml:"supply_chain_code_of_conduct"`
}

// Submission is one reporting year of company data. Sections are optional.
type Submission struct {
	Company       Company      `json:"company" yaml:"company"`
	ReportingYear int          `json:"reporting_year" yaml:"reporting_year"`
	Energy        *Energy      `json:"energy,omitempty" yaml:"energy,omitempty"`
	Travel        *Travel      `json:"travel,omitempty" yaml:"travel,omitempty"`
	Procurement   *Procurement `json:"procurement,omitempty" yaml:"procurement,omitempty"`
	Policies      *Policies    `json:"policies,omitempty" yaml:"policies,omitempty"`
}

// Decode reads a YAML or JSON submission document. Unknown fields are rejected.
func Decode(r io.Reader) (*Submission, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Submission
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding submission: empty document")
		}
		return nil, fmt.Errorf("decoding submission: %w", err)
	}
	return &s, nil
}

// Parse decodes a submission from bytes.
func Parse(data []byte) (*Submission, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads a submission document from disk.
func Load(path string) (*Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening submission: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks answers that have a defined range. It mirrors the input
// validation done before a submission is accepted; the calculator itself never
// rejects input.
func (s *Submission) Validate() error {
	var problems []string
	pct := func(name string, v float64) {
		if math.IsNaN(v) || v < 0 || v > 100 {
			problems = append(problems, fmt.Sprintf("%s must be between 0 and 100", name))
		}
	}

	if s.Company.EmployeeCount < 0 {
		problems = append(problems, "company.employee_count must not be negative")
	}
	if e := s.Energy; e != nil {
		pct("energy.renewable_electricity_pct", e.RenewableElectricityPct)
	}
	if t := s.Travel; t != nil {
		pct("travel.air_business_class_pct", t.AirBusinessClassPct)
		if t.CommuteDaysPerYear < 0 || t.CommuteDaysPerYear > 366 {
			problems = append(problems, "travel.commute_days_per_year must be between 0 and 366")
		}
		if t.CommuteModeCarPct != nil || t.CommuteModeTransitPct != nil || t.CommuteModeActivePct != nil {
			sum := deref(t.CommuteModeCarPct) + deref(t.CommuteModeTransitPct) + deref(t.CommuteModeActivePct)
			if math.Abs(sum-100) > 1 {
				problems = append(problems, "travel commute mode splits must sum to 100%")
			}
		}
	}
	if p := s.Policies; p != nil {
		if p.WasteRecycledPct != nil {
			pct("policies.waste_recycled_pct", *p.WasteRecycledPct)
		}
		if p.FemaleManagementPct != nil {
			pct("policies.female_management_pct", *p.FemaleManagementPct)
		}
		if p.LostTimeInjuryRate != nil && *p.LostTimeInjuryRate < 0 {
			problems = append(problems, "policies.lost_time_injury_rate must not be negative")
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidSubmission, strings.Join(problems, "; "))
	}
	return nil
}

// Scope1 maps the energy section onto calculator input.
func (s *Submission) Scope1() emissions.Scope1Input {
	e := s.Energy
	if e == nil {
		return emissions.Scope1Input{}
	}
	return emissions.Scope1Input{
		NaturalGasM3:       e.NaturalGasM3,
		DieselLiters:       e.DieselLiters,
		PetrolLiters:       e.PetrolLiters,
		LPGLiters:          e.LPGLiters,
		HeatingOilLiters:   e.HeatingOilLiters,
		CoalKg:             e.CoalKg,
		BiomassWoodChipsKg: e.BiomassWoodChipsKg,
		CompanyCarKm:       e.CompanyCarKm,
		CompanyVanKm:       e.CompanyVanKm,
		CompanyTruckKm:     e.CompanyTruckKm,
	}
}

// Scope2 maps purchased energy onto calculator input using the company's
// country.
func (s *Submission) Scope2() emissions.Scope2Input {
	in := emissions.Scope2Input{CountryCode: refdata.NormalizeCountry(s.Company.CountryCode)}
	if e := s.Energy; e != nil {
		in.ElectricityKWh = e.ElectricityKWh
		in.DistrictHeatingKWh = e.DistrictHeatingKWh
	}
	return in
}

// Scope3 maps travel and procurement onto calculator input. Headcount and
// industry come from the company profile.
func (s *Submission) Scope3() emissions.Scope3Input {
	in := emissions.DefaultScope3Input()
	in.EmployeeCount = s.Company.EmployeeCount
	in.IndustryCode = refdata.NormalizeIndustry(s.Company.IndustryCode)

	if t := s.Travel; t != nil {
		in.AirShortHaulKm = t.AirShortHaulKm
		in.AirLongHaulKm = t.AirLongHaulKm
		in.AirBusinessClassPct = t.AirBusinessClassPct
		in.RailKm = t.RailKm
		in.RentalCarKm = t.RentalCarKm
		in.TaxiKm = t.TaxiKm
		in.AvgCommuteKmOneWay = t.AvgCommuteKmOneWay
		if t.CommuteDaysPerYear > 0 {
			in.CommuteDaysPerYear = t.CommuteDaysPerYear
		}
	}
	if p := s.Procurement; p != nil {
		in.PurchasedGoodsSpendEUR = p.PurchasedGoodsSpendEUR
	}
	return in
}

// ScorerInput combines the profile, policy answers and calculated emissions
// into scorer input.
func (s *Submission) ScorerInput(report emissions.Report) scoring.Input {
	in := scoring.Input{
		IndustryCode:     refdata.NormalizeIndustry(s.Company.IndustryCode),
		EmployeeCount:    s.Company.EmployeeCount,
		CountryCode:      refdata.NormalizeCountry(s.Company.CountryCode),
		RevenueEUR:       s.Company.RevenueEUR,
		ReportingYear:    s.ReportingYear,
		TotalCO2eTonnes:  report.TotalTonnes(),
		Scope2CO2eTonnes: report.Scope2Tonnes(),
	}
	if e := s.Energy; e != nil {
		in.ElectricityKWh = e.ElectricityKWh
		in.RenewableElectricityPct = e.RenewableElectricityPct
	}
	if pr := s.Procurement; pr != nil && pr.HasSupplierCodeOfConduct {
		in.SupplyChainCodeOfConduct = true
	}

	p := s.Policies
	if p == nil {
		return in
	}
	in.HasEnergyReductionTarget = p.HasEnergyReductionTarget
	in.HasNetZeroTarget = p.HasNetZeroTarget
	in.WasteRecycledPct = copyFloat(p.WasteRecycledPct)
	in.HasWastePolicy = p.HasWastePolicy
	in.HasWaterPolicy = p.HasWaterPolicy
	in.HasHealthSafetyPolicy = p.HasHealthSafetyPolicy
	in.LostTimeInjuryRate = copyFloat(p.LostTimeInjuryRate)
	in.HasTrainingProgram = p.HasTrainingProgram
	in.AvgTrainingHoursPerEmployee = deref(p.AvgTrainingHoursPerEmployee)
	in.HasDiversityPolicy = p.HasDiversityPolicy
	in.FemaleManagementPct = copyFloat(p.FemaleManagementPct)
	in.LivingWageCommitment = p.LivingWageCommitment
	in.HasESGPolicy = p.HasESGPolicy
	in.HasCodeOfConduct = p.HasCodeOfConduct
	in.HasAntiCorruptionPolicy = p.HasAntiCorruptionPolicy
	in.HasDataPrivacyPolicy = p.HasDataPrivacyPolicy
	in.HasBoardESGOversight = p.HasBoardESGOversight
	if p.ESGReportingYear != nil {
		year := *p.ESGReportingYear
		in.ESGReportingYear = &year
	}
	in.SupplyChainCodeOfConduct = in.SupplyChainCodeOfConduct || p.SupplyChainCodeOfConduct
	return in
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
