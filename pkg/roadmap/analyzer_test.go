package roadmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
)

func esgScore(e, s, g float64, gaps ...string) *scoring.ESGScore {
	return &scoring.ESGScore{
		Total:         scoring.Blend(e, s, g),
		Environmental: scoring.CategoryScore{Score: e, Gaps: gaps},
		Social:        scoring.CategoryScore{Score: s, Gaps: []string{}},
		Governance:    scoring.CategoryScore{Score: g, Gaps: []string{}},
	}
}

func ids(actions []roadmap.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	catalog := roadmap.DefaultCatalog()
	require.Len(t, catalog, 16)
	require.NoError(t, roadmap.ValidateCatalog(catalog))

	seen := map[string]bool{}
	for _, a := range catalog {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.SmartGoal, a.ID)
		assert.NotEmpty(t, a.Steps, a.ID)
		assert.NotEmpty(t, a.KPIs, a.ID)
	}
}

func TestDefaultCatalogReturnsCopies(t *testing.T) {
	first := roadmap.DefaultCatalog()
	first[0].Title = "changed"
	first[0].Steps[0] = "changed"

	second := roadmap.DefaultCatalog()
	assert.NotEqual(t, "changed", second[0].Title)
	assert.NotEqual(t, "changed", second[0].Steps[0])
}

func TestHighPriorityAlwaysIncluded(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(100, 100, 100))

	var want []string
	for _, a := range roadmap.DefaultCatalog() {
		if a.Priority == roadmap.PriorityHigh {
			want = append(want, a.ID)
		}
	}
	assert.ElementsMatch(t, want, ids(report.Actions))
	assert.Equal(t, len(want), report.HighPriorityCount)
	assert.Zero(t, report.TotalPotentialScoreGain)
}

func TestLowCategorySelectsAllItsActions(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(40, 80, 90))
	got := ids(report.Actions)

	for _, id := range []string{"E001", "E002", "E003", "E004", "E005", "E006", "E007"} {
		assert.Contains(t, got, id)
	}
	assert.NotContains(t, got, "S003")
	assert.NotContains(t, got, "G004")
	assert.Contains(t, got, "G003")
}

func TestThresholdIsExclusive(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(75, 74.9, 100))
	got := ids(report.Actions)
	assert.NotContains(t, got, "E003")
	assert.Contains(t, got, "S003")
}

func TestActionsAreSortedByPriorityThenPoints(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(0, 0, 0))
	require.Len(t, report.Actions, 16)

	rank := map[roadmap.Priority]int{roadmap.PriorityHigh: 0, roadmap.PriorityMedium: 1, roadmap.PriorityLow: 2}
	for i := 1; i < len(report.Actions); i++ {
		prev, cur := report.Actions[i-1], report.Actions[i]
		if rank[prev.Priority] == rank[cur.Priority] {
			assert.GreaterOrEqual(t, prev.ScoreImprovementPts, cur.ScoreImprovementPts, "%s before %s", prev.ID, cur.ID)
		} else {
			assert.Less(t, rank[prev.Priority], rank[cur.Priority], "%s before %s", prev.ID, cur.ID)
		}
	}
	assert.Equal(t, "G003", report.Actions[0].ID)
	assert.Equal(t, "E006", report.Actions[len(report.Actions)-1].ID)
}

func TestStableSortKeepsCatalogOrderForTies(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(0, 0, 0))
	got := ids(report.Actions)

	// E001 and S002 are both high with 12 points; E001 comes first in the catalog.
	assert.Less(t, indexOf(got, "E001"), indexOf(got, "S002"))
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func TestQuickWins(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(10, 10, 10))

	assert.ElementsMatch(t, []string{"E001", "E004", "G001", "G002"}, ids(report.QuickWins))
	selected := ids(report.Actions)
	for _, q := range report.QuickWins {
		assert.Equal(t, roadmap.EffortLow, q.Effort)
		assert.Equal(t, roadmap.PriorityHigh, q.Priority)
		assert.Contains(t, selected, q.ID)
	}
}

func TestRoadmapHasEveryQuarter(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(esgScore(100, 100, 100))
	for _, q := range roadmap.Quarters {
		v, ok := report.RoadmapByQuarter[q]
		assert.True(t, ok, q)
		assert.NotNil(t, v, q)
	}
	assert.Empty(t, report.RoadmapByQuarter["Q4"])

	total := 0
	for _, acts := range report.RoadmapByQuarter {
		for _, a := range acts {
			assert.Contains(t, report.RoadmapByQuarter[a.Timeline], a)
		}
		total += len(acts)
	}
	assert.Equal(t, len(report.Actions), total)
}

func TestGainIsCapped(t *testing.T) {
	analyzer := roadmap.DefaultAnalyzer()
	for _, s := range []*scoring.ESGScore{
		esgScore(0, 0, 0),
		esgScore(50, 50, 50),
		esgScore(90, 95, 99.9),
		esgScore(99.9, 99.9, 99.9),
		esgScore(100, 100, 100),
	} {
		report := analyzer.Analyze(s)
		assert.LessOrEqual(t, report.TotalPotentialScoreGain, 100-s.Total)
		assert.GreaterOrEqual(t, report.TotalPotentialScoreGain, 0.0)
	}

	// All sixteen actions add up to 160 points; the cap is 100 - 0.
	assert.Equal(t, 100.0, analyzer.Analyze(esgScore(0, 0, 0)).TotalPotentialScoreGain)
}

func TestTotalGapsCountsCategoryGaps(t *testing.T) {
	s := esgScore(40, 80, 90, "a", "b")
	s.Governance.Gaps = []string{"c"}
	report := roadmap.DefaultAnalyzer().Analyze(s)
	assert.Equal(t, 3, report.TotalGaps)
}

func TestAnalyzerDedupesByID(t *testing.T) {
	catalog := roadmap.DefaultCatalog()
	catalog = append(catalog, catalog[0])

	analyzer, err := roadmap.NewAnalyzer(catalog)
	require.NoError(t, err)
	report := analyzer.Analyze(esgScore(0, 0, 0))
	assert.Len(t, report.Actions, 16)
}

func TestNewAnalyzerRejectsInvalidCatalog(t *testing.T) {
	catalog := roadmap.DefaultCatalog()
	catalog[3].Timeline = "Q5"
	_, err := roadmap.NewAnalyzer(catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Q5")
}

func TestAnalyzeDoesNotMutateCatalog(t *testing.T) {
	analyzer := roadmap.DefaultAnalyzer()
	report := analyzer.Analyze(esgScore(0, 0, 0))
	report.Actions[0].Title = "changed"
	report.QuickWins[0].KPIs[0] = "changed"

	for _, a := range analyzer.Catalog() {
		assert.NotEqual(t, "changed", a.Title)
		for _, k := range a.KPIs {
			assert.NotEqual(t, "changed", k)
		}
	}
}

func TestNilScore(t *testing.T) {
	report := roadmap.DefaultAnalyzer().Analyze(nil)
	assert.Len(t, report.Actions, 16)
	assert.Zero(t, report.TotalGaps)
}
