package observability

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalsfoundry/cbtc-topology/core"
)

// TopologyCollector bundles Prometheus metrics for topology-control runs
// and implements core.RunRecorder so the engine can feed it directly.
type TopologyCollector struct {
	gatherer prometheus.Gatherer

	Runs          *prometheus.CounterVec
	RunDurations  prometheus.Histogram
	NodePower     prometheus.Histogram
	NodeDegree    prometheus.Histogram
	Uncovered     prometheus.Counter
	Pruned        prometheus.Counter
	AsymRemoved   prometheus.Counter
	Fallbacks     prometheus.Counter
	LastEdges     prometheus.Gauge
	LastAvgDegree prometheus.Gauge
}

// NewTopologyCollector registers topology Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewTopologyCollector(reg prometheus.Registerer) (*TopologyCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cbtc_runs_total",
		Help: "Total number of completed topology-control runs, labeled by enabled passes.",
	}, []string{"shrink_back", "asymmetric_removal"}), "cbtc_runs_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cbtc_run_duration_seconds",
		Help:    "Wall-clock time of one topology-control run in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}), "cbtc_run_duration_seconds")
	if err != nil {
		return nil, err
	}
	power, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cbtc_node_power",
		Help:    "Final transmission power assigned to each node.",
		Buckets: prometheus.ExponentialBuckets(1, 1.5, 10),
	}), "cbtc_node_power")
	if err != nil {
		return nil, err
	}
	degree, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cbtc_node_degree",
		Help:    "Final neighbor count of each node.",
		Buckets: prometheus.LinearBuckets(0, 2, 12),
	}), "cbtc_node_degree")
	if err != nil {
		return nil, err
	}

	uncovered, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cbtc_uncovered_nodes_total",
		Help: "Nodes that reached the power ceiling without cone coverage.",
	}), "cbtc_uncovered_nodes_total")
	if err != nil {
		return nil, err
	}
	pruned, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cbtc_pruned_neighbors_total",
		Help: "Neighbors removed by shrink-back.",
	}), "cbtc_pruned_neighbors_total")
	if err != nil {
		return nil, err
	}
	asym, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cbtc_asymmetric_edges_removed_total",
		Help: "One-directional links dropped by asymmetric edge removal.",
	}), "cbtc_asymmetric_edges_removed_total")
	if err != nil {
		return nil, err
	}
	fallbacks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cbtc_repair_fallbacks_total",
		Help: "Isolated nodes reconnected to their closest node.",
	}), "cbtc_repair_fallbacks_total")
	if err != nil {
		return nil, err
	}

	edges, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cbtc_last_run_edges",
		Help: "Undirected edge count of the most recent run.",
	}), "cbtc_last_run_edges")
	if err != nil {
		return nil, err
	}
	avgDegree, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cbtc_last_run_average_degree",
		Help: "Average node degree of the most recent run.",
	}), "cbtc_last_run_average_degree")
	if err != nil {
		return nil, err
	}

	return &TopologyCollector{
		gatherer:      gatherer,
		Runs:          runs,
		RunDurations:  durations,
		NodePower:     power,
		NodeDegree:    degree,
		Uncovered:     uncovered,
		Pruned:        pruned,
		AsymRemoved:   asym,
		Fallbacks:     fallbacks,
		LastEdges:     edges,
		LastAvgDegree: avgDegree,
	}, nil
}

// RecordRun satisfies core.RunRecorder.
func (c *TopologyCollector) RecordRun(report *core.RunReport) {
	if c == nil || report == nil {
		return
	}
	c.Runs.WithLabelValues(
		strconv.FormatBool(report.Config.ShrinkBack),
		strconv.FormatBool(report.Config.AsymmetricRemoval),
	).Inc()
	c.RunDurations.Observe(report.Elapsed.Seconds())

	if report.Graph != nil {
		for _, n := range report.Graph.Nodes {
			c.NodePower.Observe(n.Power)
			c.NodeDegree.Observe(float64(len(n.Neighbors)))
		}
	}
	c.Uncovered.Add(float64(report.Summary.UncoveredNodes))
	c.Pruned.Add(float64(report.Pruned))
	c.AsymRemoved.Add(float64(report.AsymmetricRemoved))
	c.Fallbacks.Add(float64(report.Fallbacks))
	c.LastEdges.Set(float64(report.Summary.Edges))
	c.LastAvgDegree.Set(report.Summary.AverageDegree)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TopologyCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
