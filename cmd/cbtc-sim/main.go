package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/signalsfoundry/cbtc-topology/core"
	"github.com/signalsfoundry/cbtc-topology/internal/logging"
	"github.com/signalsfoundry/cbtc-topology/internal/observability"
	"github.com/signalsfoundry/cbtc-topology/kb"
	"github.com/signalsfoundry/cbtc-topology/model"
	"gopkg.in/yaml.v3"
)

type options struct {
	scenarioPath string
	only         string
	seed         uint64
	outPath      string
	metricsAddr  string
	serve        bool
	parallel     bool
	logLevel     string
	logFormat    string
}

func main() {
	var opts options
	flag.StringVar(&opts.scenarioPath, "scenario", "", "path to a JSON, YAML or TOML scenario file; empty runs the paper scenarios (a)-(h)")
	flag.StringVar(&opts.only, "only", "", "comma-separated scenario IDs to run (default: all)")
	flag.Uint64Var(&opts.seed, "seed", 1, "base seed for paper scenario placements")
	flag.StringVar(&opts.outPath, "out", "", "write run reports to this .json or .yaml file")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "HTTP address for Prometheus /metrics (empty disables)")
	flag.BoolVar(&opts.serve, "serve", false, "keep serving /metrics after the runs until interrupted")
	flag.BoolVar(&opts.parallel, "parallel", false, "run scenarios concurrently, one goroutine per scenario")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides CBTC_LOG_LEVEL)")
	flag.StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides CBTC_LOG_FORMAT)")
	flag.Parse()

	logCfg := logging.ConfigFromEnv()
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		logCfg.Format = opts.logFormat
	}
	log := logging.New(logCfg)
	ctx := context.Background()

	tracingCfg, err := observability.TracingConfigFromEnv()
	if err != nil {
		log.Error(ctx, "invalid tracing configuration", logging.Err(err))
		os.Exit(2)
	}
	shutdown, err := observability.InitTracing(ctx, tracingCfg, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	if err := run(ctx, opts, log, os.Stdout); err != nil {
		log.Error(ctx, "cbtc-sim failed", logging.Err(err))
		observability.ShutdownWithTimeout(ctx, shutdown, log)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log logging.Logger, stdout io.Writer) error {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewTopologyCollector(reg)
	if err != nil {
		return fmt.Errorf("initialise metrics collector: %w", err)
	}
	var metricsSrv *http.Server
	if opts.metricsAddr != "" {
		metricsSrv = serveMetrics(opts.metricsAddr, collector, log)
	}

	defs, err := scenarios(opts)
	if err != nil {
		return err
	}
	log.Info(ctx, "loaded scenarios", logging.Int("count", len(defs)))

	engine := core.NewTopologyEngine(
		core.WithLogger(log),
		core.WithRunRecorder(collector),
	)

	store := kb.NewResultStore()
	unsubscribe := store.Subscribe(func(ev kb.Event) {
		if ev.Type != kb.EventRunRecorded {
			return
		}
		log.Info(ctx, "recorded scenario result",
			logging.String("scenario", ev.Scenario.ID),
			logging.String("run_id", ev.Report.RunID),
			logging.Int("edges", ev.Report.Summary.Edges),
		)
	})
	defer unsubscribe()

	if err := runScenarios(ctx, engine, store, defs, opts.parallel); err != nil {
		return err
	}

	fmt.Fprintln(stdout, renderSummary(store.List()))

	if opts.outPath != "" {
		if err := writeReports(opts.outPath, store.List()); err != nil {
			return err
		}
		log.Info(ctx, "wrote run reports", logging.String("path", opts.outPath))
	}

	if metricsSrv != nil {
		if opts.serve {
			stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			<-stopCtx.Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func scenarios(opts options) ([]model.ScenarioDefinition, error) {
	var defs []model.ScenarioDefinition
	if opts.scenarioPath == "" {
		defs = model.PaperScenarios(opts.seed)
	} else {
		loaded, err := core.LoadScenarioFile(opts.scenarioPath)
		if err != nil {
			return nil, err
		}
		defs = loaded
	}

	if opts.only == "" {
		return defs, nil
	}
	want := make(map[string]bool)
	for _, id := range strings.Split(opts.only, ",") {
		if id = strings.TrimSpace(id); id != "" {
			want[id] = true
		}
	}
	filtered := defs[:0]
	for _, d := range defs {
		if want[d.ID] {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no scenario matches -only=%q", opts.only)
	}
	return filtered, nil
}

// runScenarios runs every scenario on its own Network. Scenarios never
// share nodes, so running them concurrently does not change any graph.
func runScenarios(ctx context.Context, engine *core.TopologyEngine, store *kb.ResultStore, defs []model.ScenarioDefinition, parallel bool) error {
	runOne := func(def model.ScenarioDefinition) error {
		net, err := core.NetworkForScenario(def)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", def.ID, err)
		}
		report, err := engine.Run(logging.ContextWithScenario(ctx, def.ID), net)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", def.ID, err)
		}
		return store.Record(def, report)
	}

	if !parallel {
		for _, def := range defs {
			if err := runOne(def); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, def := range defs {
		wg.Add(1)
		go func(def model.ScenarioDefinition) {
			defer wg.Done()
			if err := runOne(def); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(def)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func renderSummary(results []*kb.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		s := r.Report.Summary
		rows = append(rows, []string{
			r.Scenario.ID,
			r.Scenario.Title,
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Edges),
			fmt.Sprintf("%.2f", s.AverageDegree),
			fmt.Sprintf("%.2f", s.AveragePower),
			strconv.Itoa(s.UncoveredNodes),
			strconv.Itoa(r.Report.Pruned),
			strconv.Itoa(r.Report.Fallbacks),
			strconv.FormatBool(s.Symmetric),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Scenario", "Nodes", "Edges", "Avg degree", "Avg power", "Uncovered", "Pruned", "Fallbacks", "Symmetric").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 {
				return header
			}
			return cell
		})
	return t.String()
}

type reportEntry struct {
	Scenario model.ScenarioDefinition `json:"scenario" yaml:"scenario"`
	Report   *core.RunReport          `json:"report" yaml:"report"`
}

func writeReports(path string, results []*kb.Result) error {
	entries := make([]reportEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, reportEntry{Scenario: r.Scenario, Report: r.Report})
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(entries)
	case ".json", "":
		data, err = json.MarshalIndent(entries, "", "  ")
	default:
		return fmt.Errorf("%w: output %q", core.ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}

func serveMetrics(addr string, collector *observability.TopologyCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
