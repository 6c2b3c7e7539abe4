// Package pipeline runs the accident analysis end to end: load, clean,
// derive, aggregate, geocode, render and publish.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/accident-eda/internal/adapter/dataset"
	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
	"github.com/couchcryptid/accident-eda/internal/render"
)

// Loader reads the dataset into a table.
type Loader interface {
	Source() string
	Load(ctx context.Context) (*dataset.Table, error)
}

// Publisher sends the report aggregations downstream.
type Publisher interface {
	Publish(ctx context.Context, rep *domain.Report) error
}

// Options configures one analysis run.
type Options struct {
	OutputDir string
	Report    domain.ReportOptions
}

// Pipeline orchestrates a single analysis run. A nil geocoder disables
// hotspot enrichment and a nil publisher disables publishing.
type Pipeline struct {
	loader    Loader
	renderers []render.Renderer
	geocoder  domain.Geocoder
	publisher Publisher
	deriver   *Deriver
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options

	ready     atomic.Bool
	report    atomic.Pointer[domain.Report]
	artifacts atomic.Pointer[[]string]
}

// New creates a Pipeline with the given stages and observability.
func New(l Loader, renderers []render.Renderer, g domain.Geocoder, pub Publisher, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		loader:    l,
		renderers: renderers,
		geocoder:  g,
		publisher: pub,
		deriver:   NewDeriver(logger, metrics),
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
}

// CheckReadiness returns nil once a run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("analysis has not completed yet")
	}
	return nil
}

// Report returns the report of the last completed run, or nil.
func (p *Pipeline) Report() *domain.Report {
	return p.report.Load()
}

// Artifacts returns the paths written by the last completed run.
func (p *Pipeline) Artifacts() []string {
	if a := p.artifacts.Load(); a != nil {
		return *a
	}
	return nil
}

// Run executes one analysis. Row-level parse failures are skipped; any
// other failure aborts the run and is returned.
func (p *Pipeline) Run(ctx context.Context) (*domain.Report, error) {
	p.logger.Info("analysis started", "source", p.loader.Source(), "output_dir", p.opts.OutputDir)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	started := time.Now()

	table, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	rows := domain.RowStats{Loaded: table.Len()}

	cleaned, err := p.clean(ctx, table)
	if err != nil {
		return nil, err
	}
	rows.Cleaned = cleaned.Len()

	accidents, err := p.derive(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	rows.Parsed = len(accidents)

	rep, err := p.aggregate(ctx, rows, accidents)
	if err != nil {
		return nil, err
	}

	if err := p.geocode(ctx, rep); err != nil {
		return nil, err
	}

	paths, err := p.render(ctx, rep)
	if err != nil {
		return nil, err
	}

	if err := p.publish(ctx, rep); err != nil {
		return nil, err
	}

	p.report.Store(rep)
	p.artifacts.Store(&paths)
	p.ready.Store(true)
	p.logger.Info("analysis finished",
		"rows_loaded", rows.Loaded,
		"rows_cleaned", rows.Cleaned,
		"rows_parsed", rows.Parsed,
		"artifacts", len(paths),
		"duration", time.Since(started),
	)
	return rep, nil
}

func (p *Pipeline) load(ctx context.Context) (*dataset.Table, error) {
	defer p.observe("load", time.Now())
	table, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return table, nil
}

func (p *Pipeline) clean(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer p.observe("clean", time.Now())
	cleaned, err := table.Clean(dataset.DroppedColumns)
	if err != nil {
		return nil, fmt.Errorf("clean dataset: %w", err)
	}
	if dropped := table.Len() - cleaned.Len(); dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues(ReasonMissingValue).Add(float64(dropped))
	}
	p.logger.Info("dataset cleaned", "rows", cleaned.Len(), "dropped", table.Len()-cleaned.Len(), "columns", len(cleaned.Columns()))
	return cleaned, nil
}

func (p *Pipeline) derive(ctx context.Context, cleaned *dataset.Table) ([]domain.Accident, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer p.observe("derive", time.Now())
	raws, err := cleaned.Records()
	if err != nil {
		return nil, fmt.Errorf("map records: %w", err)
	}
	return p.deriver.Derive(raws), nil
}

func (p *Pipeline) aggregate(ctx context.Context, rows domain.RowStats, accidents []domain.Accident) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer p.observe("aggregate", time.Now())
	rep := domain.BuildReport(p.loader.Source(), rows, accidents, p.opts.Report)
	p.logger.Info("aggregations computed",
		"hours", len(rep.ByHour),
		"weather_conditions", len(rep.Weather),
		"hotspots", len(rep.Hotspots),
		"map_sample", len(rep.MapSample),
		"sample_seed", rep.SampleSeed,
	)
	return rep, nil
}

func (p *Pipeline) geocode(ctx context.Context, rep *domain.Report) error {
	if p.geocoder == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.observe("geocode", time.Now())
	rep.Hotspots = domain.EnrichHotspots(ctx, rep.Hotspots, p.geocoder, p.logger)
	return nil
}

func (p *Pipeline) render(ctx context.Context, rep *domain.Report) ([]string, error) {
	defer p.observe("render", time.Now())
	paths := make([]string, 0, len(p.renderers))
	for _, r := range p.renderers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := render.WriteFile(p.opts.OutputDir, r, rep)
		if err != nil {
			return nil, err
		}
		p.metrics.ArtifactsRendered.WithLabelValues(r.Name()).Inc()
		p.logger.Info("artifact written", "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func (p *Pipeline) publish(ctx context.Context, rep *domain.Report) error {
	if p.publisher == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.observe("publish", time.Now())
	if err := p.publisher.Publish(ctx, rep); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

func (p *Pipeline) observe(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
