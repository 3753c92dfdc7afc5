package overlay

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vedantwpatil/shake-to-enlarge/internal/cursor"
)

// State of the system cursor set as far as the controller knows.
type State int

const (
	Idle State = iota
	Overlaying
)

func (s State) String() string {
	if s == Overlaying {
		return "overlaying"
	}
	return "idle"
}

// FailurePolicy decides what happens when one cursor kind cannot be enlarged.
type FailurePolicy string

const (
	// Abort stops the enlarge sequence at the first failure.
	Abort FailurePolicy = "abort"
	// Skip logs the failure and continues with the next kind.
	Skip FailurePolicy = "skip"
)

// ParseFailurePolicy validates a policy name.
func ParseFailurePolicy(name string) (FailurePolicy, error) {
	switch p := FailurePolicy(name); p {
	case Abort, Skip:
		return p, nil
	}
	return "", fmt.Errorf("unknown failure policy %q", name)
}

// AbortError reports an enlarge sequence stopped under the Abort policy.
type AbortError struct {
	Kind cursor.Kind
	Err  error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("enlarge aborted at %s: %v", e.Kind, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// Scaler produces an enlarged cursor resource for a kind.
type Scaler interface {
	Scale(kind cursor.Kind, width, height int) (cursor.Handle, error)
}

// Installer swaps system cursors.
type Installer interface {
	Install(kind cursor.Kind, h cursor.Handle) error
	ResetAll() error
}

type Options struct {
	Kinds   []cursor.Kind
	Width   int
	Height  int
	Delay   time.Duration
	OnError FailurePolicy
	Logger  zerolog.Logger
}

// Controller swaps the configured system cursors for enlarged copies and
// restores the platform defaults on request.
type Controller struct {
	scaler    Scaler
	installer Installer
	opts      Options
	state     State
	installed []cursor.Kind
	log       zerolog.Logger
}

func NewController(scaler Scaler, installer Installer, opts Options) *Controller {
	if opts.OnError == "" {
		opts.OnError = Abort
	}
	return &Controller{
		scaler:    scaler,
		installer: installer,
		opts:      opts,
		log:       opts.Logger.With().Str("component", "overlay").Logger(),
	}
}

// Enlarge installs an enlarged cursor for every configured kind, in order.
// Under the Abort policy the first failure ends the sequence and an
// *AbortError is returned; cursors installed before it stay in place until
// Revert. The controller is Overlaying afterwards whenever the sequence ran.
func (c *Controller) Enlarge() error {
	c.installed = c.installed[:0]
	c.state = Overlaying

	for _, kind := range c.opts.Kinds {
		if err := c.enlarge(kind); err != nil {
			c.log.Error().Err(err).Str("kind", kind.String()).Msg("Failed to create scaled cursor")
			if c.opts.OnError == Abort {
				return &AbortError{Kind: kind, Err: err}
			}
			continue
		}
		c.installed = append(c.installed, kind)
	}

	c.log.Debug().
		Int("installed", len(c.installed)).
		Int("width", c.opts.Width).
		Int("height", c.opts.Height).
		Msg("Enlarged system cursors")
	return nil
}

func (c *Controller) enlarge(kind cursor.Kind) error {
	h, err := c.scaler.Scale(kind, c.opts.Width, c.opts.Height)
	if err != nil {
		return err
	}
	return c.installer.Install(kind, h)
}

// Revert asks the platform to restore its default cursors in one call. It is
// safe to call while Idle.
func (c *Controller) Revert() error {
	if err := c.installer.ResetAll(); err != nil {
		return fmt.Errorf("revert cursors: %w", err)
	}
	if c.state == Overlaying {
		c.log.Debug().Int("kinds", len(c.installed)).Msg("Restored default cursors")
	}
	c.state = Idle
	c.installed = c.installed[:0]
	return nil
}

// Delay is how long an overlay stays before it is reverted.
func (c *Controller) Delay() time.Duration {
	return c.opts.Delay
}

func (c *Controller) State() State {
	return c.state
}

// Installed lists the kinds enlarged by the last Enlarge call.
func (c *Controller) Installed() []cursor.Kind {
	return append([]cursor.Kind(nil), c.installed...)
}
