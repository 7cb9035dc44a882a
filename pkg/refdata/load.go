package refdata

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTables is returned when a table document fails schema or
// semantic validation.
var ErrInvalidTables = errors.New("invalid reference tables")

//go:embed data/factors.yaml
var defaultFactors []byte

//go:embed data/factors.schema.json
var factorsSchema string

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded reference tables. They are parsed on first use
// and shared afterwards.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(defaultFactors)
	})
	return defaultTables, defaultErr
}

// MustDefault is like Default but panics if the embedded tables are invalid.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultYAML returns a copy of the embedded table document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultFactors))
	copy(out, defaultFactors)
	return out
}

// Parse decodes a YAML (or JSON) table document, validates it against the
// table schema and checks that every factor the calculator needs is present.
func Parse(data []byte) (*Tables, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing reference tables: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTables)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(factorsSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validating reference tables: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		sort.Strings(msgs)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTables, strings.Join(msgs, "; "))
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding reference tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.Scope2.Grid = upperKeys(t.Scope2.Grid)
	t.Scope2.DistrictHeating = upperKeys(t.Scope2.DistrictHeating)
	t.Scope3.PurchasedGoods = lowerKeys(t.Scope3.PurchasedGoods)
	return &t, nil
}

// Marshal encodes tables back into the YAML document format accepted by Parse.
func Marshal(t *Tables) ([]byte, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding reference tables: %w", err)
	}
	return out, nil
}

var requiredKeys = map[string][]string{
	"scope1": {NaturalGas, Diesel, Petrol, LPG, HeatingOil, Coal, BiomassWoodChips,
		CompanyCar, CompanyVan, CompanyTruck},
	"scope3.business_travel": {ShortHaulFlight, LongHaulFlight, LongHaulFlightBusiness,
		Rail, RentalCar, Taxi},
	"scope3.employee_commuting": {CommuteMixedMode},
}

func (t *Tables) validate() error {
	tables := map[string]map[string]Factor{
		"scope1":                    t.Scope1,
		"scope2.grid":               t.Scope2.Grid,
		"scope2.district_heating":   t.Scope2.DistrictHeating,
		"scope3.business_travel":    t.Scope3.BusinessTravel,
		"scope3.employee_commuting": t.Scope3.EmployeeCommuting,
		"scope3.purchased_goods":    t.Scope3.PurchasedGoods,
	}

	var problems []string
	for name, keys := range requiredKeys {
		for _, k := range keys {
			if _, ok := tables[name][k]; !ok {
				problems = append(problems, fmt.Sprintf("%s: missing %q", name, k))
			}
		}
	}
	if _, ok := upperKeys(t.Scope2.Grid)[FallbackCountry]; !ok {
		problems = append(problems, fmt.Sprintf("scope2.grid: missing fallback %q", FallbackCountry))
	}
	if _, ok := upperKeys(t.Scope2.DistrictHeating)[FallbackCountry]; !ok {
		problems = append(problems, fmt.Sprintf("scope2.district_heating: missing fallback %q", FallbackCountry))
	}
	if _, ok := lowerKeys(t.Scope3.PurchasedGoods)[FallbackIndustry]; !ok {
		problems = append(problems, fmt.Sprintf("scope3.purchased_goods: missing fallback %q", FallbackIndustry))
	}
	for name, table := range tables {
		for k, f := range table {
			if math.IsNaN(f.Value) || math.IsInf(f.Value, 0) || f.Value < 0 {
				problems = append(problems, fmt.Sprintf("%s.%s: factor must be a finite non-negative number", name, k))
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidTables, strings.Join(problems, "; "))
	}
	return nil
}

func upperKeys(m map[string]Factor) map[string]Factor {
	out := make(map[string]Factor, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

func lowerKeys(m map[string]Factor) map[string]Factor {
	out := make(map[string]Factor, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
