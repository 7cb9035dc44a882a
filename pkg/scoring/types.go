// Package scoring implements the ESG scoring engine. It evaluates a company
// profile against a weighted table of criteria and produces explainable
// Environmental, Social and Governance scores with gap messages.
package scoring

import "math"

// Category identifies one of the three ESG pillars.
type Category string

const (
	Environmental Category = "E"
	Social        Category = "S"
	Governance    Category = "G"
)

// Categories lists the pillars in reporting order.
var Categories = []Category{Environmental, Social, Governance}

// Fixed pillar weights of the overall score.
const (
	EnvironmentalWeight = 0.5
	SocialWeight        = 0.3
	GovernanceWeight    = 0.2
)

// Input is the company profile the scorer consumes. Optional numeric answers
// are pointers so that "not reported" is distinct from zero.
type Input struct {
	IndustryCode     string  `json:"industry_code" yaml:"industry_code"`
	EmployeeCount    int     `json:"employee_count" yaml:"employee_count"`
	CountryCode      string  `json:"country_code" yaml:"country_code"`
	RevenueEUR       float64 `json:"revenue_eur" yaml:"revenue_eur"`
	ReportingYear    int     `json:"reporting_year" yaml:"reporting_year"`
	TotalCO2eTonnes  float64 `json:"total_co2e_tonnes" yaml:"total_co2e_tonnes"`
	Scope2CO2eTonnes float64 `json:"scope2_co2e_tonnes" yaml:"scope2_co2e_tonnes"`
	ElectricityKWh   float64 `json:"electricity_kwh" yaml:"electricity_kwh"`

	// Environmental
	RenewableElectricityPct  float64  `json:"renewable_electricity_pct" yaml:"renewable_electricity_pct"`
	HasEnergyReductionTarget bool     `json:"has_energy_reduction_target" yaml:"has_energy_reduction_target"`
	HasNetZeroTarget         bool     `json:"has_net_zero_target" yaml:"has_net_zero_target"`
	WasteRecycledPct         *float64 `json:"waste_recycled_pct,omitempty" yaml:"waste_recycled_pct,omitempty"`
	HasWastePolicy           bool     `json:"has_waste_policy" yaml:"has_waste_policy"`
	HasWaterPolicy           bool     `json:"has_water_policy" yaml:"has_water_policy"`

	// Social
	HasHealthSafetyPolicy       bool     `json:"has_health_safety_policy" yaml:"has_health_safety_policy"`
	LostTimeInjuryRate          *float64 `json:"lost_time_injury_rate,omitempty" yaml:"lost_time_injury_rate,omitempty"`
	HasTrainingProgram          bool     `json:"has_training_program" yaml:"has_training_program"`
	AvgTrainingHoursPerEmployee float64  `json:"avg_training_hours_per_employee" yaml:"avg_training_hours_per_employee"`
	HasDiversityPolicy          bool     `json:"has_diversity_policy" yaml:"has_diversity_policy"`
	FemaleManagementPct         *float64 `json:"female_management_pct,omitempty" yaml:"female_management_pct,omitempty"`
	LivingWageCommitment        bool     `json:"living_wage_commitment" yaml:"living_wage_commitment"`

	// Governance
	HasESGPolicy             bool `json:"has_esg_policy" yaml:"has_esg_policy"`
	HasCodeOfConduct         bool `json:"has_code_of_conduct" yaml:"has_code_of_conduct"`
	HasAntiCorruptionPolicy  bool `json:"has_anti_corruption_policy" yaml:"has_anti_corruption_policy"`
	HasDataPrivacyPolicy     bool `json:"has_data_privacy_policy" yaml:"has_data_privacy_policy"`
	HasBoardESGOversight     bool `json:"has_board_esg_oversight" yaml:"has_board_esg_oversight"`
	ESGReportingYear         *int `json:"esg_reporting_year,omitempty" yaml:"esg_reporting_year,omitempty"`
	SupplyChainCodeOfConduct bool `json:"supply_chain_code_of_conduct" yaml:"supply_chain_code_of_conduct"`
}

// CriterionResult is the output of a single criterion.
type CriterionResult struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Score    float64  `json:"score"`
	Max      float64  `json:"max"`
	Detail   string   `json:"detail"`
	Gap      string   `json:"gap,omitempty"` // set when Score < Max
}

// BreakdownEntry is the per-criterion view stored on a CategoryScore.
type BreakdownEntry struct {
	Score  float64 `json:"score"`
	Max    float64 `json:"max"`
	Detail string  `json:"detail"`
}

// CategoryScore is the result for one pillar. Score is within [0, 100].
type CategoryScore struct {
	Score     float64                   `json:"score"`
	Rating    string                    `json:"rating"`
	Breakdown map[string]BreakdownEntry `json:"breakdown"`
	Gaps      []string                  `json:"gaps"`
}

// ESGScore is the complete scoring output. Immutable once computed.
type ESGScore struct {
	Total              float64       `json:"esg_score_total"`
	Rating             string        `json:"esg_rating"`
	IndustryPercentile float64       `json:"industry_percentile"`
	Environmental      CategoryScore `json:"environmental"`
	Social             CategoryScore `json:"social"`
	Governance         CategoryScore `json:"governance"`
}

// Category returns the score for the given pillar.
func (s *ESGScore) Category(c Category) CategoryScore {
	switch c {
	case Environmental:
		return s.Environmental
	case Social:
		return s.Social
	default:
		return s.Governance
	}
}

// GapCount returns the number of gap messages across all pillars.
func (s *ESGScore) GapCount() int {
	return len(s.Environmental.Gaps) + len(s.Social.Gaps) + len(s.Governance.Gaps)
}

// Blend combines the three pillar scores with the fixed pillar weights.
func Blend(e, s, g float64) float64 {
	return e*EnvironmentalWeight + s*SocialWeight + g*GovernanceWeight
}

// RatingFromScore maps a 0-100 score to a letter rating.
func RatingFromScore(score float64) string {
	switch {
	case score >= 70:
		return "A"
	case score >= 55:
		return "B"
	case score >= 35:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
