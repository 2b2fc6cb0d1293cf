package metrics

import "github.com/san-kum/rotsim/internal/dynamo"

// TorqueEffort is the mean torque magnitude applied per tick.
type TorqueEffort struct {
	name    string
	sum     float64
	samples int
}

func NewTorqueEffort() *TorqueEffort {
	return &TorqueEffort{
		name: "torque_effort",
	}
}

func (c *TorqueEffort) Name() string {
	return c.name
}

func (c *TorqueEffort) Observe(s dynamo.Sample) {
	c.sum += s.Torque.Len()
	c.samples++
}

func (c *TorqueEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *TorqueEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
