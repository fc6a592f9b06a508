// Package celestial assembles per-body records by layering the fast,
// refined and transform oracles, and computes rise, set and transit times.
package celestial

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/litescript/ls-celestial/internal/apperrors"
	"github.com/litescript/ls-celestial/internal/ephem"
	"github.com/litescript/ls-celestial/internal/logging"
)

const tracerName = "github.com/litescript/ls-celestial/internal/celestial"

// Tier is a stage of the enhancement pipeline, in execution order.
type Tier int

const (
	TierBasic Tier = iota
	TierSecondary
	TierTertiary
)

func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// ErrorField is the record key that reports a failure of this tier.
func (t Tier) ErrorField() string {
	return t.String() + "_error"
}

// Refiner enriches a record in place. It must only Add or Refine fields.
type Refiner func(rec *Record, kind BodyKind, oc ObserverContext) error

// TierResult is the outcome of one tier.
type TierResult struct {
	Tier     Tier
	Err      error
	Duration time.Duration
}

// Report lists what happened during one run.
type Report struct {
	Tiers      []TierResult
	RiseSet    *RiseSet
	RiseSetErr error
}

// Failed returns the tiers that reported an error.
func (r Report) Failed() []Tier {
	var out []Tier
	for _, tr := range r.Tiers {
		if tr.Err != nil {
			out = append(out, tr.Tier)
		}
	}
	return out
}

// Hooks receives pipeline events, typically to update metrics.
type Hooks interface {
	TierFailed(body, tier string)
	Circumpolar(body, event string)
}

type noHooks struct{}

func (noHooks) TierFailed(string, string)  {}
func (noHooks) Circumpolar(string, string) {}

type stage struct {
	tier Tier
	run  Refiner
}

// Pipeline runs the tiers for a body. It holds no per-request state and is
// safe for concurrent use.
type Pipeline struct {
	basic   func(BodyKind, ObserverContext) (*Record, error)
	stages  []stage
	riseSet *RiseSetCalculator
	logger  *slog.Logger
	tracer  trace.Tracer
	hooks   Hooks
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; request loggers on the context take
// precedence.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHooks registers event hooks.
func WithHooks(h Hooks) Option {
	return func(p *Pipeline) {
		if h != nil {
			p.hooks = h
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithRefiner replaces the refinement of a later tier.
func WithRefiner(tier Tier, fn Refiner) Option {
	return func(p *Pipeline) {
		for i := range p.stages {
			if p.stages[i].tier == tier {
				p.stages[i].run = fn
			}
		}
	}
}

// NewPipeline wires the engine's tiers and the rise/set calculator.
func NewPipeline(engine *Engine, opts ...Option) *Pipeline {
	set := engine.Oracles()
	p := &Pipeline{
		basic: engine.BasicInfo,
		stages: []stage{
			{TierSecondary, engine.RefineSecondary},
			{TierTertiary, engine.RefineTertiary},
		},
		riseSet: NewRiseSetCalculator(set.Fast, set.Fast),
		logger:  logging.Discard(),
		tracer:  otel.Tracer(tracerName),
		hooks:   noHooks{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run computes the record for kind. A basic-tier failure is returned as an
// error and no record is produced. Later tiers run on a copy of the record
// that replaces it only on success; a failure is recorded as
// "<tier>_error" and never removes earlier fields. Rise, set and transit
// are added when the context has a location.
func (p *Pipeline) Run(ctx context.Context, kind BodyKind, oc ObserverContext) (*Record, Report, error) {
	log := logging.FromContext(ctx, p.logger).With("body", kind.String())
	ctx, span := p.tracer.Start(ctx, "celestial.run", trace.WithAttributes(
		attribute.String("body", kind.String()),
		attribute.Bool("has_location", oc.HasLocation()),
	))
	defer span.End()

	var report Report

	var rec *Record
	res := p.runTier(ctx, TierBasic, kind, func() error {
		var err error
		rec, err = p.basic(kind, oc)
		return err
	})
	report.Tiers = append(report.Tiers, res)
	if res.Err != nil {
		p.hooks.TierFailed(kind.String(), TierBasic.String())
		span.SetStatus(codes.Error, res.Err.Error())
		log.Error("basic tier failed", "error", res.Err)
		if apperrors.CodeOf(res.Err) != "" {
			return nil, report, res.Err
		}
		return nil, report, apperrors.Wrap(apperrors.CodeComputationFailed, "failed to compute "+kind.String()+" position", res.Err)
	}

	for _, st := range p.stages {
		staged := rec.Clone()
		res := p.runTier(ctx, st.tier, kind, func() error {
			return st.run(staged, kind, oc)
		})
		report.Tiers = append(report.Tiers, res)
		if res.Err == nil {
			rec = staged
			continue
		}

		p.hooks.TierFailed(kind.String(), st.tier.String())
		log.Warn("tier failed", "tier", st.tier.String(), "error", res.Err)
		if err := rec.Add(st.tier.ErrorField(), res.Err.Error()); err != nil {
			log.Error("recording tier failure", "tier", st.tier.String(), "error", err)
		}
	}

	if oc.HasLocation() {
		p.addRiseSet(ctx, rec, kind, oc, &report, log)
	}
	return rec, report, nil
}

func (p *Pipeline) runTier(ctx context.Context, tier Tier, kind BodyKind, fn func() error) TierResult {
	_, span := p.tracer.Start(ctx, "celestial.tier."+tier.String(), trace.WithAttributes(
		attribute.String("body", kind.String()),
	))
	defer span.End()

	start := time.Now()
	err := protect(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return TierResult{Tier: tier, Err: err, Duration: time.Since(start)}
}

func (p *Pipeline) addRiseSet(ctx context.Context, rec *Record, kind BodyKind, oc ObserverContext, report *Report, log *slog.Logger) {
	_, span := p.tracer.Start(ctx, "celestial.rise_set")
	defer span.End()

	staged := rec.Clone()
	err := protect(func() error {
		rs, err := p.riseSet.Compute(kind, oc)
		if err != nil {
			return err
		}
		report.RiseSet = &rs
		for _, ev := range []RiseSetEvent{rs.Rise, rs.Set} {
			if ev.Circumpolar() {
				p.hooks.Circumpolar(kind.String(), ev.Kind.String())
			}
		}
		return rs.write(staged)
	})
	if err == nil {
		*rec = *staged
		return
	}

	report.RiseSetErr = err
	span.RecordError(err)
	log.Warn("rise/set failed", "error", err)
	if addErr := rec.Add("rise_set_error", err.Error()); addErr != nil {
		log.Error("recording rise/set failure", "error", addErr)
	}
}

// protect runs fn, turning a panic into an error.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// Compile-time checks that the fast oracle can drive event searches.
var (
	_ ephem.EventFinder = (*ephem.Fast)(nil)
	_ ephem.PhaseFinder = (*ephem.Fast)(nil)
)
