// Package refdata holds the versioned emission factor tables used by the
// calculator. Tables are loaded once, validated, and never mutated afterwards,
// so a single *Tables may be shared by any number of goroutines.
package refdata

import (
	"sort"
	"strings"
)

// Fallback keys that every table set must contain.
const (
	FallbackCountry  = "EU_AVERAGE"
	FallbackIndustry = "general"
)

// Scope 1 factor keys.
const (
	NaturalGas       = "natural_gas"
	Diesel           = "diesel"
	Petrol           = "petrol"
	LPG              = "lpg"
	HeatingOil       = "heating_oil"
	Coal             = "coal"
	BiomassWoodChips = "biomass_wood_chips"
	CompanyCar       = "company_car_avg"
	CompanyVan       = "company_van_avg"
	CompanyTruck     = "company_truck_hgv_avg"
)

// Scope 3 factor keys.
const (
	ShortHaulFlight        = "short_haul_flight"
	LongHaulFlight         = "long_haul_flight"
	LongHaulFlightBusiness = "long_haul_flight_business"
	Rail                   = "rail"
	RentalCar              = "rental_car"
	Taxi                   = "taxi"
	CommuteMixedMode       = "avg_mixed_mode"
)

// Factor is a single emission factor with its unit and source citation.
type Factor struct {
	Value  float64 `yaml:"value" json:"value"`
	Unit   string  `yaml:"unit" json:"unit"`
	Source string  `yaml:"source" json:"source"`
}

// Scope2Tables holds purchased-energy factors keyed by country code.
type Scope2Tables struct {
	Grid            map[string]Factor `yaml:"grid" json:"grid"`
	DistrictHeating map[string]Factor `yaml:"district_heating" json:"district_heating"`
}

// Scope3Tables holds value-chain factors.
type Scope3Tables struct {
	BusinessTravel    map[string]Factor `yaml:"business_travel" json:"business_travel"`
	EmployeeCommuting map[string]Factor `yaml:"employee_commuting" json:"employee_commuting"`
	PurchasedGoods    map[string]Factor `yaml:"purchased_goods" json:"purchased_goods"`
}

// Tables is the complete, immutable set of reference factors.
type Tables struct {
	Version string            `yaml:"version" json:"version"`
	Scope1  map[string]Factor `yaml:"scope1" json:"scope1"`
	Scope2  Scope2Tables      `yaml:"scope2" json:"scope2"`
	Scope3  Scope3Tables      `yaml:"scope3" json:"scope3"`
}

// Fuel returns the Scope 1 factor for key.
func (t *Tables) Fuel(key string) (Factor, bool) {
	f, ok := t.Scope1[key]
	return f, ok
}

// Travel returns the business travel factor for key.
func (t *Tables) Travel(key string) (Factor, bool) {
	f, ok := t.Scope3.BusinessTravel[key]
	return f, ok
}

// Commuting returns the employee commuting factor for key.
func (t *Tables) Commuting(key string) (Factor, bool) {
	f, ok := t.Scope3.EmployeeCommuting[key]
	return f, ok
}

// Grid resolves the electricity grid factor for a country code. When the code
// is unknown the EU_AVERAGE entry is returned with ok=false. The returned key
// is the entry actually applied.
func (t *Tables) Grid(country string) (f Factor, applied string, ok bool) {
	return lookup(t.Scope2.Grid, NormalizeCountry(country), FallbackCountry)
}

// DistrictHeating resolves the district heating factor for a country code,
// falling back to EU_AVERAGE the same way Grid does.
func (t *Tables) DistrictHeating(country string) (f Factor, applied string, ok bool) {
	return lookup(t.Scope2.DistrictHeating, NormalizeCountry(country), FallbackCountry)
}

// Spend resolves the spend-based factor for an industry code, falling back to
// the general factor when the industry is unknown.
func (t *Tables) Spend(industry string) (f Factor, applied string, ok bool) {
	return lookup(t.Scope3.PurchasedGoods, NormalizeIndustry(industry), FallbackIndustry)
}

// Countries returns the grid country codes in sorted order.
func (t *Tables) Countries() []string {
	return sortedKeys(t.Scope2.Grid)
}

// Industries returns the spend-based industry codes in sorted order.
func (t *Tables) Industries() []string {
	return sortedKeys(t.Scope3.PurchasedGoods)
}

// NormalizeCountry upper-cases and trims a country code. An empty code is
// treated as EU_AVERAGE.
func NormalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return FallbackCountry
	}
	return code
}

// NormalizeIndustry lower-cases and trims an industry code. An empty code is
// treated as general.
func NormalizeIndustry(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return FallbackIndustry
	}
	return code
}

func lookup(table map[string]Factor, key, fallback string) (Factor, string, bool) {
	if f, ok := table[key]; ok {
		return f, key, true
	}
	return table[fallback], fallback, false
}

func sortedKeys(m map[string]Factor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
