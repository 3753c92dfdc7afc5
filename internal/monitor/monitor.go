package monitor

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/vedantwpatil/shake-to-enlarge/internal/tracking"
)

// DefaultInterval is the pointer sampling cadence.
const DefaultInterval = 50 * time.Millisecond

// Overlay enlarges and restores the system cursors.
type Overlay interface {
	Enlarge() error
	Revert() error
	Delay() time.Duration
}

type Options struct {
	Interval   time.Duration
	Thresholds tracking.Thresholds
	Clock      clockwork.Clock
	Logger     zerolog.Logger
}

// Monitor polls the pointer, feeds the shake detector and drives the overlay.
// Everything runs on the goroutine calling Run.
type Monitor struct {
	pointer  tracking.Pointer
	overlay  Overlay
	opts     Options
	clock    clockwork.Clock
	log      zerolog.Logger
	detector *tracking.Detector
	prev     tracking.PointerSample
	// revert is armed while the overlay is active.
	revert   clockwork.Timer
	triggers int
}

func New(pointer tracking.Pointer, overlay Overlay, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Monitor{
		pointer: pointer,
		overlay: overlay,
		opts:    opts,
		clock:   opts.Clock,
		log:     opts.Logger.With().Str("component", "monitor").Logger(),
	}
}

// Run samples the pointer every interval until ctx is done or an enlarge
// sequence aborts. Cursors still enlarged on return are restored first.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := m.clock.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	m.start()
	m.log.Info().
		Dur("interval", m.opts.Interval).
		Int("distance", m.opts.Thresholds.Distance).
		Int("edges", m.opts.Thresholds.Edges).
		Str("policy", string(m.opts.Thresholds.Policy)).
		Msg("Watching pointer for shakes")

	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return nil
		case <-ticker.Chan():
			if err := m.tick(); err != nil {
				m.shutdown()
				return err
			}
		case <-m.revertC():
			m.expire()
		}
	}
}

// Triggers reports how many shakes were detected so far.
func (m *Monitor) Triggers() int {
	return m.triggers
}

func (m *Monitor) start() {
	m.prev = tracking.Sample(m.pointer, tracking.PointerSample{})
	m.detector = tracking.NewDetector(m.opts.Thresholds, m.prev)
}

func (m *Monitor) tick() error {
	s := tracking.Sample(m.pointer, m.prev)
	m.prev = s

	dec := m.detector.Observe(s)
	if !dec.Trigger {
		return nil
	}
	m.triggers++

	if m.revert != nil {
		m.rearm()
		m.log.Debug().Int("x", s.X).Int("y", s.Y).Msg("Shake detected while enlarged, extending")
		return nil
	}

	m.log.Info().Int("x", s.X).Int("y", s.Y).Msg("Shake detected")
	m.revert = m.clock.NewTimer(m.overlay.Delay())
	return m.overlay.Enlarge()
}

func (m *Monitor) rearm() {
	if !m.revert.Stop() {
		select {
		case <-m.revert.Chan():
		default:
		}
	}
	m.revert.Reset(m.overlay.Delay())
}

func (m *Monitor) revertC() <-chan time.Time {
	if m.revert == nil {
		return nil
	}
	return m.revert.Chan()
}

func (m *Monitor) expire() {
	m.revert = nil
	if err := m.overlay.Revert(); err != nil {
		m.log.Error().Err(err).Msg("Failed to restore default cursors")
	}
}

func (m *Monitor) shutdown() {
	if m.revert == nil {
		return
	}
	m.revert.Stop()
	m.expire()
}
