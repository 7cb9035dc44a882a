package submission_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/submission"
)

func floatPtr(v float64) *float64 { return &v }

func fullSubmission() *submission.Submission {
	return &submission.Submission{
		Company:       submission.Company{Name: "Acme", IndustryCode: "retail", CountryCode: "DE", EmployeeCount: 12},
		ReportingYear: 2024,
		Energy:        &submission.Energy{ElectricityKWh: 5000},
		Travel:        &submission.Travel{},
		Procurement:   &submission.Procurement{},
		Policies:      &submission.Policies{},
	}
}

func TestLoadFixture(t *testing.T) {
	s, err := submission.Load(filepath.Join("testdata", "nordic_tech.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "technology", s.Company.IndustryCode)
	assert.Equal(t, 2024, s.ReportingYear)
	require.NotNil(t, s.Energy)
	assert.Equal(t, 65000.0, s.Energy.ElectricityKWh)
	require.NotNil(t, s.Policies)
	require.NotNil(t, s.Policies.LostTimeInjuryRate)
	assert.Zero(t, *s.Policies.LostTimeInjuryRate)
	assert.NoError(t, s.Validate())
}

func TestParseAcceptsJSON(t *testing.T) {
	s, err := submission.Parse([]byte(`{"company": {"name": "Acme", "country_code": "se"}, "reporting_year": 2023, "energy": {"electricity_kwh": 100}}`))
	require.NoError(t, err)
	assert.Equal(t, "se", s.Company.CountryCode)
	assert.Nil(t, s.Travel)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := submission.Parse([]byte("company:\n  name: Acme\n  turnover: 12\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turnover")
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := submission.Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestValidate(t *testing.T) {
	s := fullSubmission()
	s.Energy.RenewableElectricityPct = 140
	s.Travel.CommuteModeCarPct = floatPtr(80)
	s.Travel.CommuteModeTransitPct = floatPtr(30)

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, submission.ErrInvalidSubmission))
	assert.Contains(t, err.Error(), "renewable_electricity_pct")
	assert.Contains(t, err.Error(), "mode splits")
}

func TestCompletenessFullyComplete(t *testing.T) {
	c := fullSubmission().Completeness()
	assert.True(t, c.IsComplete)
	assert.Equal(t, 100, c.CompletionPct)
	assert.Empty(t, c.BlockingIssues)
	assert.Len(t, c.Sections, 4)
}

func TestCompletenessRules(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(s *submission.Submission)
		wantComplete bool
		wantPct      int
		blockingWord string
		incomplete   string
	}{
		{
			name:         "missing energy blocks",
			mutate:       func(s *submission.Submission) { s.Energy = nil },
			wantPct:      75,
			blockingWord: "energy",
			incomplete:   submission.SectionEnergy,
		},
		{
			name:         "all-zero energy blocks",
			mutate:       func(s *submission.Submission) { s.Energy = &submission.Energy{RenewableElectricityPct: 100} },
			wantPct:      75,
			blockingWord: "energy",
			incomplete:   submission.SectionEnergy,
		},
		{
			name:         "missing policies blocks",
			mutate:       func(s *submission.Submission) { s.Policies = nil },
			wantPct:      75,
			blockingWord: "policy",
			incomplete:   submission.SectionPolicies,
		},
		{
			name:         "missing travel is only flagged",
			mutate:       func(s *submission.Submission) { s.Travel = nil },
			wantComplete: true,
			wantPct:      75,
			incomplete:   submission.SectionTravel,
		},
		{
			name:         "missing procurement is only flagged",
			mutate:       func(s *submission.Submission) { s.Procurement = nil },
			wantComplete: true,
			wantPct:      75,
			incomplete:   submission.SectionProcurement,
		},
		{
			name: "travel and procurement missing",
			mutate: func(s *submission.Submission) {
				s.Travel = nil
				s.Procurement = nil
			},
			wantComplete: true,
			wantPct:      50,
			incomplete:   submission.SectionTravel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fullSubmission()
			tt.mutate(s)
			c := s.Completeness()

			assert.Equal(t, tt.wantComplete, c.IsComplete)
			assert.Equal(t, tt.wantPct, c.CompletionPct)
			assert.False(t, c.Sections[tt.incomplete].Complete)
			assert.NotEmpty(t, c.Sections[tt.incomplete].Missing)
			if tt.blockingWord != "" {
				found := false
				for _, issue := range c.BlockingIssues {
					if strings.Contains(strings.ToLower(issue), tt.blockingWord) {
						found = true
					}
				}
				assert.True(t, found, "blocking issues %v should mention %q", c.BlockingIssues, tt.blockingWord)
			} else {
				assert.Empty(t, c.BlockingIssues)
			}
		})
	}
}

func TestCalculatorMapping(t *testing.T) {
	s := fullSubmission()
	s.Company.CountryCode = " dk "
	s.Company.IndustryCode = "Manufacturing"
	s.Energy.NaturalGasM3 = 50
	s.Travel.AvgCommuteKmOneWay = 8
	s.Procurement.PurchasedGoodsSpendEUR = 1000

	s1 := s.Scope1()
	assert.Equal(t, 50.0, s1.NaturalGasM3)

	s2 := s.Scope2()
	assert.Equal(t, "DK", s2.CountryCode)
	assert.Equal(t, 5000.0, s2.ElectricityKWh)

	s3 := s.Scope3()
	assert.Equal(t, 12, s3.EmployeeCount)
	assert.Equal(t, emissions.DefaultCommuteDays, s3.CommuteDaysPerYear)
	assert.Equal(t, "manufacturing", s3.IndustryCode)
	assert.Equal(t, 1000.0, s3.PurchasedGoodsSpendEUR)
}

func TestMappingWithoutSections(t *testing.T) {
	s := &submission.Submission{}
	assert.Equal(t, emissions.Scope1Input{}, s.Scope1())
	assert.Equal(t, refdata.FallbackCountry, s.Scope2().CountryCode)
	assert.Equal(t, refdata.FallbackIndustry, s.Scope3().IndustryCode)

	in := s.ScorerInput(emissions.Report{})
	assert.False(t, in.HasESGPolicy)
	assert.Nil(t, in.ESGReportingYear)
}

func TestScorerInputMapping(t *testing.T) {
	s, err := submission.Load(filepath.Join("testdata", "nordic_tech.yaml"))
	require.NoError(t, err)

	report := emissions.Report{Scope1TotalKg: 2000, Scope2TotalKg: 10000, Scope3TotalKg: 13000, TotalKg: 25000}
	in := s.ScorerInput(report)

	assert.InDelta(t, 25.0, in.TotalCO2eTonnes, 1e-9)
	assert.InDelta(t, 10.0, in.Scope2CO2eTonnes, 1e-9)
	assert.Equal(t, 40.0, in.RenewableElectricityPct)
	assert.Equal(t, 24.0, in.AvgTrainingHoursPerEmployee)
	assert.True(t, in.HasHealthSafetyPolicy)
	assert.True(t, in.SupplyChainCodeOfConduct, "supplier code from procurement counts")
	require.NotNil(t, in.LostTimeInjuryRate)

	*s.Policies.LostTimeInjuryRate = 9
	assert.Zero(t, *in.LostTimeInjuryRate, "scorer input must not alias the submission")
}
