package pipeline

import (
	"time"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// ResultRecord is the flat, storable form of a Result, one row per
// submission and reporting year.
type ResultRecord struct {
	RunID         string `json:"run_id"`
	CalculatedAt  string `json:"calculated_at"`
	ReportingYear int    `json:"reporting_year"`

	Scope1CO2eKg    float64             `json:"scope1_co2e_kg"`
	Scope2CO2eKg    float64             `json:"scope2_co2e_kg"`
	Scope3CO2eKg    float64             `json:"scope3_co2e_kg"`
	TotalCO2eKg     float64             `json:"total_co2e_kg"`
	Scope1Breakdown emissions.Breakdown `json:"scope1_breakdown"`
	Scope2Breakdown emissions.Breakdown `json:"scope2_breakdown"`
	Scope3Breakdown emissions.Breakdown `json:"scope3_breakdown"`

	ESGScoreTotal      float64                           `json:"esg_score_total"`
	ESGScoreE          float64                           `json:"esg_score_e"`
	ESGScoreS          float64                           `json:"esg_score_s"`
	ESGScoreG          float64                           `json:"esg_score_g"`
	ESGRating          string                            `json:"esg_rating"`
	IndustryPercentile float64                           `json:"industry_percentile"`
	EBreakdown         map[string]scoring.BreakdownEntry `json:"e_breakdown"`
	SBreakdown         map[string]scoring.BreakdownEntry `json:"s_breakdown"`
	GBreakdown         map[string]scoring.BreakdownEntry `json:"g_breakdown"`

	IdentifiedGaps  []string         `json:"identified_gaps"`
	Recommendations []roadmap.Action `json:"recommendations"`

	EngineVersion string `json:"calculation_engine_version"`
}

// Record flattens r. Gaps are listed environmental first, then social, then
// governance.
func (r *Result) Record() ResultRecord {
	rec := ResultRecord{
		RunID:           r.RunID,
		CalculatedAt:    r.CalculatedAt.Format(time.RFC3339),
		ReportingYear:   r.ReportingYear,
		Scope1CO2eKg:    r.CO2.Scope1TotalKg,
		Scope2CO2eKg:    r.CO2.Scope2TotalKg,
		Scope3CO2eKg:    r.CO2.Scope3TotalKg,
		TotalCO2eKg:     r.CO2.TotalKg,
		Scope1Breakdown: r.CO2.Scope1Breakdown,
		Scope2Breakdown: r.CO2.Scope2Breakdown,
		Scope3Breakdown: r.CO2.Scope3Breakdown,
		IdentifiedGaps:  []string{},
		Recommendations: []roadmap.Action{},
		EngineVersion:   r.EngineVersion,
	}

	if r.ESG != nil {
		rec.ESGScoreTotal = r.ESG.Total
		rec.ESGScoreE = r.ESG.Environmental.Score
		rec.ESGScoreS = r.ESG.Social.Score
		rec.ESGScoreG = r.ESG.Governance.Score
		rec.ESGRating = r.ESG.Rating
		rec.IndustryPercentile = r.ESG.IndustryPercentile
		rec.EBreakdown = r.ESG.Environmental.Breakdown
		rec.SBreakdown = r.ESG.Social.Breakdown
		rec.GBreakdown = r.ESG.Governance.Breakdown
		for _, c := range scoring.Categories {
			rec.IdentifiedGaps = append(rec.IdentifiedGaps, r.ESG.Category(c).Gaps...)
		}
	}
	if r.Gaps != nil {
		rec.Recommendations = append(rec.Recommendations, r.Gaps.Actions...)
	}
	return rec
}
