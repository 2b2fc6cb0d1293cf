package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/metrics"
	"github.com/san-kum/rotsim/internal/record"
	"github.com/san-kum/rotsim/internal/sim"
)

// Experiment is one configured batch run with the standard metrics and a
// sample recorder attached.
type Experiment struct {
	cfg      *config.Config
	engine   *sim.Engine
	recorder *record.Recorder
	metrics  []dynamo.Metric
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the engine. every sets how many ticks separate recorded
// samples; zero disables recording.
func (e *Experiment) Setup(reg *Registry, every int) error {
	engine, err := reg.Build(e.cfg)
	if err != nil {
		return err
	}
	e.engine = engine
	e.metrics = metrics.Standard()
	for _, m := range e.metrics {
		engine.AddMetric(m)
	}
	if every > 0 {
		e.recorder = record.NewRecorder(every)
		engine.AddObserver(e.recorder)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.recorder != nil {
		e.recorder.Reset()
		e.recorder.Add(e.engine.Sample())
	}
	return e.engine.Run(ctx, e.cfg.Duration)
}

func (e *Experiment) Engine() *sim.Engine    { return e.engine }
func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Samples() []dynamo.Sample {
	if e.recorder == nil {
		return nil
	}
	return e.recorder.Samples()
}

// Export packages a finished run for JSON output.
func (e *Experiment) Export(res *sim.Result) record.Export {
	out := record.Export{
		Name:       e.cfg.Name,
		Mode:       e.cfg.Torque.Mode,
		Integrator: e.cfg.Integrator,
		Step:       e.cfg.Step,
		Duration:   e.cfg.Duration,
		Samples:    record.Rows(e.Samples()),
	}
	if res != nil {
		out.Ticks = res.Ticks
		out.Metrics = res.Metrics
	}
	return out
}
