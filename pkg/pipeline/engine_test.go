package pipeline_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
	"github.com/esgcopilot/esgcore/pkg/submission"
)

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.FixedZone("CET", 3600))

func loadFixture(t *testing.T) *submission.Submission {
	t.Helper()
	s, err := submission.Load(filepath.Join("..", "submission", "testdata", "nordic_tech.yaml"))
	require.NoError(t, err)
	return s
}

func newEngine(t *testing.T, opts ...pipeline.Option) *pipeline.Engine {
	t.Helper()
	base := []pipeline.Option{
		pipeline.WithClock(func() time.Time { return fixedTime }),
		pipeline.WithIDGenerator(func() string { return "run-1" }),
	}
	e, err := pipeline.New(append(base, opts...)...)
	require.NoError(t, err)
	return e
}

func TestRunFixture(t *testing.T) {
	e := newEngine(t)
	s := loadFixture(t)

	r, err := e.Run(s)
	require.NoError(t, err)

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, fixedTime.UTC(), r.CalculatedAt)
	assert.Equal(t, time.UTC, r.CalculatedAt.Location())
	assert.Equal(t, pipeline.DefaultEngineVersion, r.EngineVersion)
	assert.Equal(t, e.Tables().Version, r.ReferenceDataVersion)
	assert.Equal(t, roadmap.CatalogVersion, r.ActionCatalogVersion)
	assert.Equal(t, "Fjord Analytics ApS", r.Company.Name)
	assert.Equal(t, 2024, r.ReportingYear)
	assert.True(t, r.Completeness.IsComplete)

	assert.InDelta(t, r.CO2.Scope1TotalKg+r.CO2.Scope2TotalKg+r.CO2.Scope3TotalKg, r.CO2.TotalKg, 1e-6)
	assert.Contains(t, r.CO2.Scope2Breakdown, "electricity")
	assert.Empty(t, r.CO2.Warnings)

	require.NotNil(t, r.ESG)
	assert.InDelta(t, scoring.Blend(r.ESG.Environmental.Score, r.ESG.Social.Score, r.ESG.Governance.Score), r.ESG.Total, 1e-9)
	require.NotNil(t, r.Gaps)
	assert.LessOrEqual(t, r.Gaps.TotalPotentialScoreGain, 100-r.ESG.Total)
}

func TestRunMatchesStages(t *testing.T) {
	e := newEngine(t)
	s := loadFixture(t)

	r, err := e.Run(s)
	require.NoError(t, err)

	report := e.Calculate(s)
	assert.Equal(t, report, r.CO2)

	score, _ := e.Score(s)
	assert.Equal(t, score, r.ESG)
	assert.Equal(t, roadmap.DefaultAnalyzer().Analyze(score), r.Gaps)
}

func TestRunNilSubmission(t *testing.T) {
	_, err := newEngine(t).Run(nil)
	assert.True(t, errors.Is(err, pipeline.ErrNilSubmission))
}

func TestRunIncompleteSubmission(t *testing.T) {
	r, err := newEngine(t).Run(&submission.Submission{Company: submission.Company{Name: "Empty"}})
	require.NoError(t, err)

	assert.False(t, r.Completeness.IsComplete)
	assert.Zero(t, r.CO2.TotalKg)
	assert.Zero(t, r.CO2.LineItemCount())
	assert.NotEmpty(t, r.Gaps.Actions)
}

func TestPreviewsTolerateNil(t *testing.T) {
	e := newEngine(t)
	assert.Zero(t, e.Calculate(nil).TotalKg)
	score, report := e.Score(nil)
	require.NotNil(t, score)
	assert.Zero(t, report.TotalKg)
}

func TestNewRejectsInvalidWeights(t *testing.T) {
	w := scoring.Defaults()
	w[scoring.KeyGHGIntensity] += 5

	_, err := pipeline.New(pipeline.WithWeights(w))
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrInvalidWeights))
}

func TestNewRejectsInvalidCatalog(t *testing.T) {
	actions := roadmap.DefaultCatalog()
	actions[0].Priority = "urgent"

	_, err := pipeline.New(pipeline.WithCatalog("broken", actions))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	actions := roadmap.DefaultCatalog()[:3]
	e := newEngine(t,
		pipeline.WithEngineVersion("2.1.0"),
		pipeline.WithCatalog("custom-1", actions),
	)

	r, err := e.Run(loadFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", r.EngineVersion)
	assert.Equal(t, "custom-1", r.ActionCatalogVersion)
	assert.LessOrEqual(t, len(r.Gaps.Actions), 3)

	// Empty values keep defaults.
	e = newEngine(t, pipeline.WithEngineVersion(""), pipeline.WithLogger(nil))
	assert.Equal(t, pipeline.DefaultEngineVersion, e.EngineVersion())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := pipeline.NewMetrics(reg)
	e := newEngine(t, pipeline.WithMetrics(m))

	s := loadFixture(t)
	s.Company.CountryCode = "XX"
	s.Company.IndustryCode = "shipbuilding"
	s.Energy.DistrictHeatingKWh = 1000

	r, err := e.Run(s)
	require.NoError(t, err)
	require.Len(t, r.CO2.Warnings, 3)

	_, err = e.Run(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarningsTotal.WithLabelValues(emissions.WarningGridFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarningsTotal.WithLabelValues(emissions.WarningDistrictHeatingFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WarningsTotal.WithLabelValues(emissions.WarningIndustryFallback)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LineItemsTotal.WithLabelValues("scope2")), "electricity twice plus district heating once")
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))

	last, err := e.Run(loadFixture(t))
	require.NoError(t, err)
	assert.Equal(t, last.ESG.Total, testutil.ToFloat64(m.LastESGScore.WithLabelValues("total")))
	assert.Equal(t, last.ESG.Governance.Score, testutil.ToFloat64(m.LastESGScore.WithLabelValues("governance")))
}

func TestMetricsPerRegistry(t *testing.T) {
	// Two engines with their own registries must not collide.
	assert.NotPanics(t, func() {
		pipeline.NewMetrics(prometheus.NewRegistry())
		pipeline.NewMetrics(prometheus.NewRegistry())
	})
	reg := prometheus.NewRegistry()
	pipeline.NewMetrics(reg)
	assert.Panics(t, func() { pipeline.NewMetrics(reg) })
}

func TestRunLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := newEngine(t, pipeline.WithLogger(zap.New(core)))

	s := loadFixture(t)
	s.Company.CountryCode = "XX"
	_, err := e.Run(s)
	require.NoError(t, err)

	warnings := logs.FilterMessage("calculation warning").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, emissions.WarningGridFallback, warnings[0].ContextMap()["kind"])
	assert.Equal(t, 1, logs.FilterMessage("pipeline run complete").Len())
}

func TestRecord(t *testing.T) {
	r, err := newEngine(t).Run(loadFixture(t))
	require.NoError(t, err)

	rec := r.Record()
	assert.Equal(t, "2025-03-14T08:30:00Z", rec.CalculatedAt)
	assert.Equal(t, r.CO2.TotalKg, rec.TotalCO2eKg)
	assert.Equal(t, r.CO2.Scope3Breakdown, rec.Scope3Breakdown)
	assert.Equal(t, r.ESG.Total, rec.ESGScoreTotal)
	assert.Equal(t, r.ESG.Social.Score, rec.ESGScoreS)
	assert.Equal(t, r.ESG.Rating, rec.ESGRating)
	assert.Equal(t, r.ESG.Governance.Breakdown, rec.GBreakdown)
	assert.Len(t, rec.IdentifiedGaps, r.ESG.GapCount())
	assert.Equal(t, r.Gaps.Actions, rec.Recommendations)
	assert.Equal(t, pipeline.DefaultEngineVersion, rec.EngineVersion)

	var n int
	for _, c := range scoring.Categories {
		for _, g := range r.ESG.Category(c).Gaps {
			assert.Equal(t, g, rec.IdentifiedGaps[n])
			n++
		}
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var row map[string]any
	require.NoError(t, json.Unmarshal(data, &row))
	for _, col := range []string{
		"scope1_co2e_kg", "scope2_co2e_kg", "scope3_co2e_kg", "total_co2e_kg",
		"scope1_breakdown", "scope2_breakdown", "scope3_breakdown",
		"esg_score_total", "esg_score_e", "esg_score_s", "esg_score_g", "esg_rating",
		"industry_percentile", "e_breakdown", "s_breakdown", "g_breakdown",
		"identified_gaps", "recommendations", "calculation_engine_version",
	} {
		assert.Contains(t, row, col)
	}
}

func TestResultJSONKeys(t *testing.T) {
	r, err := newEngine(t).Run(loadFixture(t))
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"run_id", "calculated_at", "calculation_engine_version", "reference_data_version", "action_catalog_version", "co2_result", "esg_score", "gaps"} {
		assert.Contains(t, doc, key)
	}
}
