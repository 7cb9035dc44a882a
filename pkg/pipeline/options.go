package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// DefaultEngineVersion is reported when no version is configured.
const DefaultEngineVersion = "1.0.0"

type options struct {
	tables         *refdata.Tables
	weights        scoring.Weights
	catalog        []roadmap.Action
	catalogVersion string
	engineVersion  string
	logger         *zap.Logger
	metrics        *Metrics
	now            func() time.Time
	newID          func() string
}

func defaultOptions() options {
	return options{
		weights:        scoring.Defaults(),
		catalog:        roadmap.DefaultCatalog(),
		catalogVersion: roadmap.CatalogVersion,
		engineVersion:  DefaultEngineVersion,
		logger:         zap.NewNop(),
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Option configures an Engine.
type Option func(*options)

// WithTables sets the reference tables. The embedded tables are used otherwise.
func WithTables(t *refdata.Tables) Option {
	return func(o *options) { o.tables = t }
}

// WithWeights sets the scoring weight table.
func WithWeights(w scoring.Weights) Option {
	return func(o *options) { o.weights = w }
}

// WithCatalog replaces the action catalog and its version label.
func WithCatalog(version string, actions []roadmap.Action) Option {
	return func(o *options) {
		o.catalogVersion = version
		o.catalog = actions
	}
}

// WithEngineVersion sets the calculation_engine_version stamped on results.
func WithEngineVersion(v string) Option {
	return func(o *options) {
		if v != "" {
			o.engineVersion = v
		}
	}
}

// WithLogger sets the logger. Runs are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records every run on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock sets the time source for calculated_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator sets the run id generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}
