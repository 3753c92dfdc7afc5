package tracking

import "fmt"

// Policy selects when a fast tick counts toward a shake.
type Policy string

const (
	// PolicyReversal counts only ticks whose horizontal direction flipped.
	// Sustained one-directional fast movement never triggers.
	PolicyReversal Policy = "reversal"
	// PolicyLegacy counts every tick above the distance threshold.
	PolicyLegacy Policy = "legacy"
)

// ParsePolicy validates a policy name.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicyReversal, PolicyLegacy:
		return p, nil
	}
	return "", fmt.Errorf("unknown shake policy %q", name)
}

// Thresholds tune the detector.
type Thresholds struct {
	// Distance is the combined |dx|+|dy| a tick must exceed.
	Distance int
	// Edges is the count a shake must reach before it triggers.
	Edges  int
	Policy Policy
}

// Decision is the outcome of one tick.
type Decision struct {
	Trigger  bool
	Exceeded bool
	Reversal bool
	// Edges is the counter value after the tick.
	Edges int
}

// Detector recognizes a rapid left-right oscillation of the pointer.
// It is not safe for concurrent use.
type Detector struct {
	thresholds Thresholds
	prev       PointerSample
	count      int
}

// NewDetector starts a detector from the first sample. The initial direction
// is taken as leftward.
func NewDetector(t Thresholds, first PointerSample) *Detector {
	if t.Policy == "" {
		t.Policy = PolicyReversal
	}
	first.MovingRight = false
	return &Detector{thresholds: t, prev: first}
}

// Observe feeds one sample into the detector. s.MovingRight is recomputed
// against the previous sample.
func (d *Detector) Observe(s PointerSample) Decision {
	dx, dy := s.Delta(d.prev)
	s.MovingRight = s.X > d.prev.X

	dec := Decision{Reversal: s.MovingRight != d.prev.MovingRight}
	defer func() { d.prev = s }()

	if dx+dy <= d.thresholds.Distance {
		d.count = 0
		return dec
	}
	dec.Exceeded = true

	if dec.Reversal || d.thresholds.Policy == PolicyLegacy {
		d.count++
	}

	if d.count >= d.thresholds.Edges && dec.Reversal {
		dec.Trigger = true
		d.count = 0
	}
	dec.Edges = d.count
	return dec
}

// Edges returns the current counter value.
func (d *Detector) Edges() int {
	return d.count
}
