// Package automation runs batches of configured simulations: scripted
// scenarios, one-parameter sweeps and randomized trials.
package automation

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/experiment"
	"github.com/san-kum/rotsim/internal/sim"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset or a config file (the file wins when
// both are given) and applies the overrides on top.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Config     string             `yaml:"config"`
	Mode       string             `yaml:"mode"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Resolve builds the step's config.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Mode != "" {
		cfg.Torque.Mode = s.Mode
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if err := cfg.Apply(s.Params); err != nil {
		return nil, err
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

type StepResult struct {
	Config  *config.Config
	Result  *sim.Result
	Samples []dynamo.Sample
}

// RunScenario executes all steps in order, recording every n-th tick. It
// stops at the first failing step and returns the steps completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, every int) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Printf("scenario %s: step %d/%d %s", scenario.Name, i+1, len(scenario.Steps), cfg.Name)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, every); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Config: cfg, Result: result, Samples: exp.Samples()})
	}
	return results, nil
}

// energyRange is an observer tracking the extremes of total energy.
type energyRange struct {
	lo, hi float64
	seen   bool
}

func (r *energyRange) OnTick(s dynamo.Sample) {
	e := s.Total()
	if !r.seen {
		r.lo, r.hi, r.seen = e, e, true
		return
	}
	r.lo, r.hi = math.Min(r.lo, e), math.Max(r.hi, e)
}

// ParameterSweep varies one config parameter (see config.ParamNames) over
// NumSteps evenly spaced values.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	Final      dynamo.Sample
	MaxEnergy  float64
	MinEnergy  float64
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d: %w", sweep.NumSteps, dynamo.ErrParameterBounds)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.Min + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		if err := cfg.SetParam(sweep.Param, value); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, 0); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}
		er := &energyRange{}
		exp.Engine().AddObserver(er)
		er.OnTick(exp.Engine().Sample())

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		results = append(results, SweepResult{
			ParamValue: value,
			Final:      result.Final,
			MaxEnergy:  er.hi,
			MinEnergy:  er.lo,
			Metrics:    result.Metrics,
		})
		log.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.Param, value)
	}
	return results, nil
}

// MonteCarloConfig perturbs each component of the base rate direction by a
// uniform amount in [-Perturbation, Perturbation].
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult reports whether the body flipped: whether ω about the
// axis it initially spun about most strongly ever changed sign.
type MonteCarloResult struct {
	TrialID   int
	Direction [3]float64
	Final     mgl64.Vec3
	Flipped   bool
}

type flipWatch struct {
	axis    int
	sign    float64
	flipped bool
}

func (f *flipWatch) OnTick(s dynamo.Sample) {
	if s.Omega[f.axis]*f.sign < 0 {
		f.flipped = true
	}
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		c := cfg.Base.Clone()
		for i := range c.Rate.Direction {
			c.Rate.Direction[i] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		}

		engine, err := registry.Build(c)
		if err != nil {
			return nil, err
		}
		w0 := engine.Body().AngularVelocity()
		axis := 0
		for i := 1; i < 3; i++ {
			if math.Abs(w0[i]) > math.Abs(w0[axis]) {
				axis = i
			}
		}
		watch := &flipWatch{axis: axis, sign: math.Copysign(1, w0[axis])}
		engine.AddObserver(watch)

		result, err := engine.Run(ctx, c.Duration)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Direction: c.Rate.Direction,
			Final:     result.Final.Omega,
			Flipped:   watch.flipped,
		})

		if (trial+1)%10 == 0 {
			log.Printf("monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}
	return results, nil
}
