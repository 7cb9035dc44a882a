package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/esgcopilot/esgcore/internal/logging"
	"github.com/esgcopilot/esgcore/internal/refstore"
	"github.com/esgcopilot/esgcore/pkg/config"
	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/refdata"
	"github.com/esgcopilot/esgcore/pkg/scoring"
	"github.com/esgcopilot/esgcore/pkg/submission"
)

// globalOpts holds the persistent root flags.
type globalOpts struct {
	configPath string
	factors    string
	logLevel   string
	logFormat  string
}

// env is the resolved runtime shared by all subcommands.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	tables *refdata.Tables
}

// setup resolves configuration (file, then ESGCORE_* env, then flags), builds
// the logger and loads the reference tables.
func setup(ctx context.Context, g *globalOpts) (*env, error) {
	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.Reference.Source = firstNonEmpty(g.factors, cfg.Reference.Source)
	cfg.Logging.Level = firstNonEmpty(g.logLevel, cfg.Logging.Level)
	cfg.Logging.Format = firstNonEmpty(g.logFormat, cfg.Logging.Format)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	tables, err := loadTables(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, tables: tables}, nil
}

// close flushes the logger.
func (e *env) close() {
	_ = e.logger.Sync()
}

// loadConfig reads an explicit config file, or the nearest
// .esgcore/config.yaml above the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return config.Load(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfgFile := config.FindConfigFile(cwd)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

func loadTables(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*refdata.Tables, error) {
	src := cfg.Reference.Source
	if src == "" {
		t, err := refdata.Default()
		if err != nil {
			return nil, err
		}
		logger.Debug("using embedded reference tables", zap.String("version", t.Version))
		return t, nil
	}

	data, err := refstore.Read(ctx, src, s3Config(cfg))
	if err != nil {
		return nil, fmt.Errorf("reading reference tables from %s: %w", src, err)
	}
	t, err := refdata.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading reference tables from %s: %w", src, err)
	}
	logger.Info("loaded reference tables", zap.String("source", src), zap.String("version", t.Version))
	return t, nil
}

func s3Config(cfg *config.Config) refstore.S3Config {
	return refstore.S3Config{
		Region:    cfg.Reference.S3.Region,
		Endpoint:  cfg.Reference.S3.Endpoint,
		AccessKey: cfg.Reference.S3.AccessKey,
		SecretKey: cfg.Reference.S3.SecretKey,
	}
}

// newEngine builds a pipeline engine from the resolved runtime.
func (e *env) newEngine(opts ...pipeline.Option) (*pipeline.Engine, error) {
	base := []pipeline.Option{
		pipeline.WithTables(e.tables),
		pipeline.WithWeights(scoringWeights(e.cfg)),
		pipeline.WithEngineVersion(e.cfg.Engine.Version),
		pipeline.WithLogger(e.logger),
	}
	return pipeline.New(append(base, opts...)...)
}

// scoringWeights applies config overrides on top of the default weights.
func scoringWeights(cfg *config.Config) scoring.Weights {
	return scoring.Defaults().Merge(cfg.Scoring.Weights)
}

// loadSubmission reads a submission file. Validation problems are logged but
// do not stop the run.
func (e *env) loadSubmission(path string) (*submission.Submission, error) {
	s, err := submission.Load(path)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		e.logger.Warn("submission has out-of-range answers", zap.String("file", path), zap.Error(err))
	}
	return s, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
