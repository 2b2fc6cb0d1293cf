// Package record captures engine samples and writes them out as CSV or JSON.
package record

import (
	"fmt"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// Recorder is an engine observer keeping every Every-th sample.
type Recorder struct {
	Every   int
	samples []dynamo.Sample
	seen    int
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every}
}

func (r *Recorder) OnTick(s dynamo.Sample) {
	if r.seen%r.Every == 0 {
		r.samples = append(r.samples, s)
	}
	r.seen++
}

// Add appends a sample unconditionally, e.g. the state before the first tick.
func (r *Recorder) Add(s dynamo.Sample) { r.samples = append(r.samples, s) }

func (r *Recorder) Samples() []dynamo.Sample { return r.samples }

func (r *Recorder) Reset() {
	r.samples = r.samples[:0]
	r.seen = 0
}

// SeriesNames lists the columns accepted by Series.
var SeriesNames = []string{
	"wx", "wy", "wz", "w",
	"hx", "hy", "hz", "h",
	"tx", "ty", "tz",
	"qw", "qx", "qy", "qz",
	"kinetic", "potential", "total",
}

// Series extracts one named quantity from samples.
func Series(samples []dynamo.Sample, name string) ([]float64, error) {
	pick, err := picker(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = pick(s)
	}
	return out, nil
}

func picker(name string) (func(dynamo.Sample) float64, error) {
	switch name {
	case "wx", "wy", "wz":
		i := int(name[1] - 'x')
		return func(s dynamo.Sample) float64 { return s.Omega[i] }, nil
	case "w":
		return func(s dynamo.Sample) float64 { return s.Omega.Len() }, nil
	case "hx", "hy", "hz":
		i := int(name[1] - 'x')
		return func(s dynamo.Sample) float64 { return s.H[i] }, nil
	case "h":
		return func(s dynamo.Sample) float64 { return s.H.Len() }, nil
	case "tx", "ty", "tz":
		i := int(name[1] - 'x')
		return func(s dynamo.Sample) float64 { return s.Torque[i] }, nil
	case "qw", "qx", "qy", "qz":
		i := map[byte]int{'w': 0, 'x': 1, 'y': 2, 'z': 3}[name[1]]
		return func(s dynamo.Sample) float64 { return s.QuatWXYZ()[i] }, nil
	case "kinetic":
		return func(s dynamo.Sample) float64 { return s.Kinetic }, nil
	case "potential":
		return func(s dynamo.Sample) float64 { return s.Potential }, nil
	case "total":
		return func(s dynamo.Sample) float64 { return s.Total() }, nil
	}
	return nil, fmt.Errorf("unknown series %q", name)
}
