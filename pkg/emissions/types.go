// Package emissions converts raw activity quantities into kg CO2e split into
// GHG Protocol Scope 1, 2 and 3, with an audited line item per source.
// The calculator never calls out to anything and never fails: unknown codes
// fall back to reference defaults and are reported as warnings.
package emissions

import (
	"encoding/json"

	"github.com/esgcopilot/esgcore/pkg/refdata"
)

// DefaultCommuteDays is the number of commuting days assumed per year.
const DefaultCommuteDays = 220

// Scope3 category tags.
const (
	CategoryPurchasedGoods = "Cat 1"
	CategoryBusinessTravel = "Cat 6"
	CategoryCommuting      = "Cat 7"
)

// SpendUncertainty annotates spend-based line items.
const SpendUncertainty = "±50% (spend-based EEIO method)"

// Scope1Input holds direct emission activity: stationary and mobile
// combustion in company-owned equipment and vehicles.
type Scope1Input struct {
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
}

// Scope2Input holds purchased energy. An empty CountryCode means EU_AVERAGE.
type Scope2Input struct {
	ElectricityKWh     float64 `json:"electricity_kwh" yaml:"electricity_kwh"`
	DistrictHeatingKWh float64 `json:"district_heating_kwh" yaml:"district_heating_kwh"`
	CountryCode        string  `json:"country_code" yaml:"country_code"`
}

// Scope3Input holds value chain activity: business travel (Cat 6), employee
// commuting (Cat 7) and spend on purchased goods (Cat 1).
type Scope3Input struct {
	AirShortHaulKm      float64 `json:"air_short_haul_km" yaml:"air_short_haul_km"`
	AirLongHaulKm       float64 `json:"air_long_haul_km" yaml:"air_long_haul_km"`
	AirBusinessClassPct float64 `json:"air_business_class_pct" yaml:"air_business_class_pct"` // share of long-haul km
	RailKm              float64 `json:"rail_km" yaml:"rail_km"`
	RentalCarKm         float64 `json:"rental_car_km" yaml:"rental_car_km"`
	TaxiKm              float64 `json:"taxi_km" yaml:"taxi_km"`

	EmployeeCount      int     `json:"employee_count" yaml:"employee_count"`
	AvgCommuteKmOneWay float64 `json:"avg_commute_km_one_way" yaml:"avg_commute_km_one_way"`
	CommuteDaysPerYear int     `json:"commute_days_per_year" yaml:"commute_days_per_year"`

	PurchasedGoodsSpendEUR float64 `json:"purchased_goods_spend_eur" yaml:"purchased_goods_spend_eur"`
	IndustryCode           string  `json:"industry_code" yaml:"industry_code"`
}

// DefaultScope2Input returns a Scope2Input with the EU_AVERAGE country code.
func DefaultScope2Input() Scope2Input {
	return Scope2Input{CountryCode: refdata.FallbackCountry}
}

// DefaultScope3Input returns a Scope3Input with the default commuting days
// and the general industry code.
func DefaultScope3Input() Scope3Input {
	return Scope3Input{
		CommuteDaysPerYear: DefaultCommuteDays,
		IndustryCode:       refdata.FallbackIndustry,
	}
}

// CommutingDetails records the parameters behind the commuting estimate.
type CommutingDetails struct {
	Employees   int     `json:"employees"`
	AvgOneWayKm float64 `json:"avg_one_way_km"`
	CommuteDays int     `json:"commute_days"`
}

// LineItem is one emission source with its full audit trail. Line items are
// produced once and never modified.
type LineItem struct {
	SourceKey      string            `json:"source_key"`
	KgCO2e         float64           `json:"kg_co2e"`
	InputValue     float64           `json:"input_value"`
	InputUnit      string            `json:"input_unit"`
	FactorValue    float64           `json:"factor_value"`
	FactorUnit     string            `json:"factor_unit"`
	SourceCitation string            `json:"source_citation"`
	Scope3Category string            `json:"scope3_category,omitempty"`
	Uncertainty    string            `json:"uncertainty,omitempty"`
	CountryApplied string            `json:"country_applied,omitempty"`
	Commuting      *CommutingDetails `json:"commuting_details,omitempty"`
}

// Breakdown maps a source key to its line item.
type Breakdown map[string]LineItem

// Report is the full calculation output. All values are kg CO2e.
// TotalKg is always the sum of the three scope totals.
type Report struct {
	Scope1TotalKg float64 `json:"scope1_total_kg"`
	Scope2TotalKg float64 `json:"scope2_total_kg"`
	Scope3TotalKg float64 `json:"scope3_total_kg"`
	TotalKg       float64 `json:"total_kg"`

	Scope1Breakdown Breakdown `json:"scope1_breakdown"`
	Scope2Breakdown Breakdown `json:"scope2_breakdown"`
	Scope3Breakdown Breakdown `json:"scope3_breakdown"`

	Warnings []string `json:"warnings"`
}

func (r *Report) Scope1Tonnes() float64 { return r.Scope1TotalKg / 1000 }
func (r *Report) Scope2Tonnes() float64 { return r.Scope2TotalKg / 1000 }
func (r *Report) Scope3Tonnes() float64 { return r.Scope3TotalKg / 1000 }
func (r *Report) TotalTonnes() float64  { return r.TotalKg / 1000 }

// LineItemCount returns the number of line items across all scopes.
func (r *Report) LineItemCount() int {
	return len(r.Scope1Breakdown) + len(r.Scope2Breakdown) + len(r.Scope3Breakdown)
}

// MarshalJSON adds the tonne totals alongside the kg fields.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		plain
		Scope1TotalTonnes float64 `json:"scope1_total_tonnes"`
		Scope2TotalTonnes float64 `json:"scope2_total_tonnes"`
		Scope3TotalTonnes float64 `json:"scope3_total_tonnes"`
		TotalTonnes       float64 `json:"total_tonnes"`
	}{
		plain:             plain(r),
		Scope1TotalTonnes: r.Scope1Tonnes(),
		Scope2TotalTonnes: r.Scope2Tonnes(),
		Scope3TotalTonnes: r.Scope3Tonnes(),
		TotalTonnes:       r.TotalTonnes(),
	})
}
