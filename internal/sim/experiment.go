package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"manetbench/internal/config"
	"manetbench/internal/engine"
	"manetbench/internal/logging"
	"manetbench/internal/metrics"
	"manetbench/internal/netem"
)

// Experiment wires one full measurement run: traffic generators, receive
// collectors, the overhead classifier, and the metrics aggregator, all over
// a single discrete-event scheduler.
type Experiment struct {
	cfg    *config.ExperimentConfig
	writer SnapshotWriter
	runID  string
}

// Result bundles everything a finished run produced.
type Result struct {
	RunID    string
	Report   metrics.FinalReport
	Rows     []metrics.SnapshotRow
	Protocol string
}

// NewExperiment validates cfg and prepares a run. writer may be nil when the
// caller only wants the in-memory rows.
func NewExperiment(cfg *config.ExperimentConfig, writer SnapshotWriter) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, writer: writer, runID: uuid.NewString()}, nil
}

// RunID returns the identity stamped onto this run's rows.
func (e *Experiment) RunID() string { return e.runID }

// Run executes the experiment to completion and returns the final report.
// All simulation state transitions happen inside scheduler callbacks on the
// calling goroutine; ctx carries the logger.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	log := logging.FromContext(ctx)
	cfg := e.cfg
	cutoff := cfg.TotalTimeS - 1.0

	sched := engine.NewScheduler()
	rng := rand.New(rand.NewSource(cfg.Seed))
	link := netem.NewLinkLayer()
	counters := metrics.NewCounters()

	var violation error
	collector := NewReceiveCollector(sched, counters, func(err error) {
		if violation == nil {
			violation = err
		}
	})
	NewOverheadClassifier(link, cfg.OverheadThresholdBytes, counters)

	profile := netem.ProfileFor(cfg.Protocol).Apply(cfg.Control)
	control := netem.NewControlPlane(sched, link, profile, cfg.Nodes, cutoff, rng)
	control.Start()

	log.Info("starting experiment",
		"run_id", e.runID,
		"protocol", cfg.Protocol,
		"nodes", cfg.Nodes,
		"flows", cfg.Sinks,
		"total_time_s", cfg.TotalTimeS,
		"rate_bps", cfg.DataRateBps,
		"pkts_per_s", cfg.PacketsPerSecond())

	// One flow per sink: node (i + sinks) sends to node i, starting at a
	// random point inside the one-second start window.
	var (
		generators []*TrafficGenerator
		channels   []*netem.Channel
		flowEvents []*engine.Event
	)
	for i := 0; i < cfg.Sinks; i++ {
		delay := netem.NewPathDelayModel(cfg.Path, cfg.TotalTimeS, rng)
		ch := netem.NewChannel(sched, link, delay, cfg.Channel, rng)
		collector.Attach(ch)

		flow := Flow{
			ID:         uuid.NewString(),
			SourceNode: i + cfg.Sinks,
			SinkNode:   i,
			PacketSize: cfg.PacketSizeBytes,
			Remaining:  cfg.PacketsPerFlow(),
			Interval:   cfg.SendInterval(),
			StartTime:  cfg.TrafficStartS + rng.Float64(),
		}
		log.Debug("flow configured",
			"flow", flow.ID,
			"source", flow.SourceNode,
			"sink", flow.SinkNode,
			"packets", flow.Remaining,
			"start_s", flow.StartTime)

		gen := NewTrafficGenerator(sched, ch, flow, cutoff, counters)
		gen.Start()
		flowEvents = append(flowEvents, sched.ScheduleAt(flow.StartTime, control.FlowStarted))

		generators = append(generators, gen)
		channels = append(channels, ch)
	}

	agg := NewMetricsAggregator(sched, counters, RunInfo{
		RunID:    e.runID,
		Protocol: cfg.Protocol,
		Sinks:    cfg.Sinks,
		TxPower:  cfg.TxPowerDbm,
	}, e.writer, cutoff)
	agg.Start()

	sched.Run(cfg.TotalTimeS)

	// Teardown order matters: cancel every live event handle first, then
	// release the channels, so no stray callback fires into a closed pipe.
	for _, gen := range generators {
		gen.Stop()
	}
	agg.Stop()
	control.Stop()
	for _, ev := range flowEvents {
		sched.Cancel(ev)
	}
	for _, ch := range channels {
		ch.Close()
	}

	if violation != nil {
		return nil, fmt.Errorf("sim: invariant violation: %w", violation)
	}
	if err := agg.Err(); err != nil {
		return nil, err
	}

	report := metrics.Summarize(e.runID, cfg.Protocol, counters)
	log.Info("experiment finished",
		"run_id", e.runID,
		"sent", report.PacketsSent,
		"received", report.PacketsReceived,
		"dropped", report.PacketsDropped,
		"pdr", report.PDR,
		"routing_frames", report.RoutingFrames)

	return &Result{
		RunID:    e.runID,
		Report:   report,
		Rows:     agg.Rows(),
		Protocol: cfg.Protocol,
	}, nil
}
