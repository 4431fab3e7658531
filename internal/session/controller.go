// Package session decides, per state-creation request, whether a gap in user
// activity should divert the conversation to a recovery state or be silently
// resumed. The decision is a pure function of the session record, the target
// and the clock; persistence is delegated to a Store.
package session

import (
	"fmt"
	"slices"
	"time"

	"mamacare/internal/platform/config"
	"mamacare/internal/platform/metrics"
)

// Decision is the outcome of resolving one state-creation request: the state
// to materialize and the updated session record to persist. The interrupt is
// consumed as part of the returned record, never as a side effect on shared
// state.
type Decision struct {
	Next    State
	Session Session
}

// Controller implements the timeout/interrupt recovery state machine.
type Controller struct {
	cfg     config.SessionConfig
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewController builds a controller. metrics may be nil.
func NewController(cfg config.SessionConfig, m *metrics.Metrics) *Controller {
	return &Controller{cfg: cfg, metrics: m, now: time.Now}
}

// Touch records user activity.
func (c *Controller) Touch(sess Session) Session {
	sess.LastActivity = c.now()
	return sess
}

// Reconnect arms the interrupt; called when the channel opens a new session
// for an address that already has a conversation in flight.
func (c *Controller) Reconnect(sess Session) Session {
	sess.InterruptPending = true
	return sess
}

// Resolve applies the transition rule to a state-creation request:
//
//   - within the timeout, or target on the no-timeout-redirect list:
//     proceed to the target unchanged;
//   - gap exceeded with an unconsumed interrupt: targets on the
//     timeout-redirect list divert to the configured redirect state,
//     discarding the original; everything else diverts to the recovery
//     prompt with the original target captured.
//
// Either way the interrupt is consumed: the same gap never triggers twice.
func (c *Controller) Resolve(sess Session, target State) Decision {
	triggered := sess.InterruptPending &&
		!sess.LastActivity.IsZero() &&
		c.now().Sub(sess.LastActivity) > c.cfg.Timeout &&
		!slices.Contains(c.cfg.NoTimeoutRedirects, target.Name)

	out := sess
	out.InterruptPending = false

	if !triggered {
		return Decision{Next: target, Session: out}
	}

	if c.metrics != nil {
		c.metrics.IncSessionTimeout()
	}

	if slices.Contains(c.cfg.TimeoutRedirects, target.Name) {
		out.Captured = nil
		return Decision{Next: State{Name: c.cfg.RedirectState}, Session: out}
	}

	out.Captured = &State{Name: target.Name, Options: target.Options}
	return Decision{Next: State{Name: c.cfg.ResumeState}, Session: out}
}

// Choose resolves the user's answer at the recovery prompt. Continue
// restores the captured target and options exactly as requested; restart and
// exit move to the application's entry and terminal states.
func (c *Controller) Choose(sess Session, choice Choice) (Decision, error) {
	out := sess
	out.Captured = nil

	switch choice {
	case ChoiceContinue:
		if sess.Captured == nil {
			return Decision{}, fmt.Errorf("session: no captured state to resume")
		}
		if c.metrics != nil {
			c.metrics.IncSessionResume(string(choice))
		}
		return Decision{Next: *sess.Captured, Session: out}, nil
	case ChoiceRestart:
		if c.metrics != nil {
			c.metrics.IncSessionResume(string(choice))
		}
		return Decision{Next: State{Name: c.cfg.StartState}, Session: out}, nil
	case ChoiceExit:
		if c.metrics != nil {
			c.metrics.IncSessionResume(string(choice))
		}
		return Decision{Next: State{Name: c.cfg.ExitState}, Session: out}, nil
	default:
		return Decision{}, fmt.Errorf("session: unknown resume choice %q", choice)
	}
}
