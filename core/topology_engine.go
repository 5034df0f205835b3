package core

import (
	"context"
	"time"

	"github.com/signalsfoundry/cbtc-topology/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/cbtc-topology/core"

// RunReport is what one TopologyEngine run produces: the final
// neighbor graph plus counters from the individual passes.
type RunReport struct {
	RunID  string         `json:"run_id" yaml:"run_id"`
	Config Config         `json:"config" yaml:"config"`
	Graph  *NeighborGraph `json:"graph" yaml:"graph"`

	Summary GraphSummary `json:"summary" yaml:"summary"`

	EscalationAttempts int           `json:"escalation_attempts" yaml:"escalation_attempts"`
	Pruned             int           `json:"pruned" yaml:"pruned"`
	AsymmetricRemoved  int           `json:"asymmetric_removed" yaml:"asymmetric_removed"`
	Fallbacks          int           `json:"fallbacks" yaml:"fallbacks"`
	Elapsed            time.Duration `json:"elapsed" yaml:"elapsed"`
}

// RunRecorder receives a report after every completed run.
type RunRecorder interface {
	RecordRun(report *RunReport)
}

// NodeListener is called after a node has finished all enabled passes.
type NodeListener func(idx int, node *Node)

// TopologyEngine drives CBTC over a Network: for each node in creation
// order it runs power escalation, then shrink-back, then asymmetric
// edge removal when those passes are enabled. Node i is finished before
// node i+1 starts, so later nodes see the final state of earlier ones.
type TopologyEngine struct {
	log           logging.Logger
	metrics       RunRecorder
	tracer        trace.Tracer
	nodeListeners []NodeListener
}

// EngineOption configures a TopologyEngine.
type EngineOption func(*TopologyEngine)

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) EngineOption {
	return func(e *TopologyEngine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRunRecorder sets the recorder notified after every run.
func WithRunRecorder(r RunRecorder) EngineOption {
	return func(e *TopologyEngine) {
		e.metrics = r
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *TopologyEngine) {
		if t != nil {
			e.tracer = t
		}
	}
}

func NewTopologyEngine(opts ...EngineOption) *TopologyEngine {
	e := &TopologyEngine{
		log:    logging.Noop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterNodeListener adds a callback invoked once per node per run.
func (e *TopologyEngine) RegisterNodeListener(fn NodeListener) {
	e.nodeListeners = append(e.nodeListeners, fn)
}

// Run resets net and computes its neighbor graph in place. The context
// only carries logging and tracing state; a run is never interrupted.
func (e *TopologyEngine) Run(ctx context.Context, net *Network) (*RunReport, error) {
	if net == nil || net.Len() == 0 {
		return nil, ErrEmptyNetwork
	}
	cfg := net.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, log := logging.WithRunLogger(ctx, e.log)
	runID := logging.RunIDFromContext(ctx)
	ctx, span := e.tracer.Start(ctx, "cbtc.Run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("nodes", net.Len()),
		attribute.Float64("cone_angle", cfg.ConeAngle),
		attribute.Float64("initial_power", cfg.InitialPower),
		attribute.Float64("max_power", cfg.MaxPower),
		attribute.Bool("shrink_back", cfg.ShrinkBack),
		attribute.Bool("asymmetric_removal", cfg.AsymmetricRemoval),
	))
	defer span.End()

	start := time.Now()
	net.Reset()
	report := &RunReport{RunID: runID, Config: cfg}

	for idx := 0; idx < net.Len(); idx++ {
		esc := Escalate(net, idx)
		report.EscalationAttempts += esc.Attempts
		node := net.node(idx)
		if !esc.Covered {
			log.Warn(ctx, "node not covered at power ceiling",
				logging.Int("node_id", node.ID),
				logging.Float64("attempted_power", esc.AttemptedPower),
				logging.Int("degree", node.Degree()),
			)
			span.AddEvent("uncovered", trace.WithAttributes(attribute.Int("node_id", node.ID)))
		}

		if cfg.ShrinkBack {
			report.Pruned += ShrinkBack(net, idx)
		}

		if cfg.AsymmetricRemoval {
			rep := RepairAsymmetric(net, idx)
			report.AsymmetricRemoved += rep.Removed
			if rep.Fallback {
				report.Fallbacks++
				log.Debug(ctx, "reconnected isolated node to closest node",
					logging.Int("node_id", node.ID),
					logging.Int("neighbor_id", net.nodes[rep.FallbackNeighbor].ID),
				)
			}
		}

		log.Debug(ctx, "node topology settled",
			logging.Int("node_id", node.ID),
			logging.Float64("power", node.Power),
			logging.Int("degree", node.Degree()),
			logging.Bool("covered", node.Covered),
		)
		for _, fn := range e.nodeListeners {
			fn(idx, node)
		}
	}

	report.Graph = Snapshot(net)
	report.Summary = report.Graph.Summary()
	report.Elapsed = time.Since(start)

	span.SetAttributes(
		attribute.Int("edges", report.Summary.Edges),
		attribute.Int("uncovered_nodes", report.Summary.UncoveredNodes),
		attribute.Int("pruned", report.Pruned),
		attribute.Int("fallbacks", report.Fallbacks),
	)
	log.Info(ctx, "topology control run complete",
		logging.Int("nodes", report.Summary.Nodes),
		logging.Int("edges", report.Summary.Edges),
		logging.Float64("average_degree", report.Summary.AverageDegree),
		logging.Float64("average_power", report.Summary.AveragePower),
		logging.Int("uncovered_nodes", report.Summary.UncoveredNodes),
		logging.Int("pruned", report.Pruned),
		logging.Int("fallbacks", report.Fallbacks),
		logging.Duration("elapsed", report.Elapsed),
	)

	if e.metrics != nil {
		e.metrics.RecordRun(report)
	}
	return report, nil
}
