// Package pipeline runs a submission through the calculator, the scorer and
// the gap analyzer and stamps the result with run metadata.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
	"github.com/esgcopilot/esgcore/pkg/submission"
)

// ErrNilSubmission is returned by Run when called without a submission.
var ErrNilSubmission = errors.New("nil submission")

// Result is the full output of one pipeline run.
type Result struct {
	RunID                string                  `json:"run_id"`
	CalculatedAt         time.Time               `json:"calculated_at"`
	EngineVersion        string                  `json:"calculation_engine_version"`
	ReferenceDataVersion string                  `json:"reference_data_version"`
	ActionCatalogVersion string                  `json:"action_catalog_version"`
	Company              submission.Company      `json:"company"`
	ReportingYear        int                     `json:"reporting_year"`
	Completeness         submission.Completeness `json:"completeness"`
	CO2                  emissions.Report        `json:"co2_result"`
	ESG                  *scoring.ESGScore       `json:"esg_score"`
	Gaps                 *roadmap.GapReport      `json:"gaps"`
}

// Engine wires the three core stages together. It is immutable after New and
// safe for concurrent use.
type Engine struct {
	calc     *emissions.Calculator
	scorer   *scoring.Engine
	analyzer *roadmap.Analyzer

	engineVersion  string
	catalogVersion string

	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time
	newID   func() string
}

// New builds an Engine. Errors come from invalid weights or an invalid action
// catalog; the embedded reference tables are used when none are supplied.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.tables == nil {
		t, err := refdata.Default()
		if err != nil {
			return nil, fmt.Errorf("loading embedded reference tables: %w", err)
		}
		o.tables = t
	}

	scorer, err := scoring.NewEngine(o.weights)
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}
	analyzer, err := roadmap.NewAnalyzer(o.catalog)
	if err != nil {
		return nil, fmt.Errorf("building analyzer: %w", err)
	}

	return &Engine{
		calc:           emissions.New(o.tables),
		scorer:         scorer,
		analyzer:       analyzer,
		engineVersion:  o.engineVersion,
		catalogVersion: o.catalogVersion,
		logger:         o.logger,
		metrics:        o.metrics,
		now:            o.now,
		newID:          o.newID,
	}, nil
}

// Tables returns the reference tables in use.
func (e *Engine) Tables() *refdata.Tables {
	return e.calc.Tables()
}

// EngineVersion returns the version stamped on results.
func (e *Engine) EngineVersion() string {
	return e.engineVersion
}

// Calculate runs only the emissions calculator.
func (e *Engine) Calculate(s *submission.Submission) emissions.Report {
	if s == nil {
		s = &submission.Submission{}
	}
	return e.calc.Calculate(s.Scope1(), s.Scope2(), s.Scope3())
}

// Score runs the calculator and the scorer without gap analysis.
func (e *Engine) Score(s *submission.Submission) (*scoring.ESGScore, emissions.Report) {
	if s == nil {
		s = &submission.Submission{}
	}
	report := e.Calculate(s)
	in := s.ScorerInput(report)
	return e.scorer.Score(&in), report
}

// Run executes calculator, scorer and analyzer in order. Incomplete
// submissions still run; readiness is reported in Result.Completeness.
func (e *Engine) Run(s *submission.Submission) (*Result, error) {
	if s == nil {
		return nil, ErrNilSubmission
	}
	start := time.Now()

	score, report := e.Score(s)
	gaps := e.analyzer.Analyze(score)

	r := &Result{
		RunID:                e.newID(),
		CalculatedAt:         e.now().UTC(),
		EngineVersion:        e.engineVersion,
		ReferenceDataVersion: e.calc.Tables().Version,
		ActionCatalogVersion: e.catalogVersion,
		Company:              s.Company,
		ReportingYear:        s.ReportingYear,
		Completeness:         s.Completeness(),
		CO2:                  report,
		ESG:                  score,
		Gaps:                 gaps,
	}

	kinds := make([]string, len(report.Warnings))
	for i, w := range report.Warnings {
		kinds[i] = emissions.ClassifyWarning(w)
		e.logger.Debug("calculation warning",
			zap.String("run_id", r.RunID),
			zap.String("kind", kinds[i]),
			zap.String("message", w),
		)
	}
	elapsed := time.Since(start)
	e.metrics.observe(r, elapsed.Seconds(), kinds)

	e.logger.Debug("pipeline run complete",
		zap.String("run_id", r.RunID),
		zap.String("company", s.Company.Name),
		zap.Int("reporting_year", s.ReportingYear),
		zap.Float64("total_co2e_kg", report.TotalKg),
		zap.Float64("esg_score_total", score.Total),
		zap.String("esg_rating", score.Rating),
		zap.Int("actions", len(gaps.Actions)),
		zap.Duration("elapsed", elapsed),
	)
	return r, nil
}
