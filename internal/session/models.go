package session

import "time"

// State is a state-creation request from the conversational engine: the
// target state name plus its opaque creation options. Options pass through
// capture and resume untouched.
type State struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

// Choice is the user's answer at the recovery prompt.
type Choice string

const (
	ChoiceContinue Choice = "continue"
	ChoiceRestart  Choice = "restart"
	ChoiceExit     Choice = "exit"
)

// Session is the per-conversation record. Exactly one session is active per
// conversational context; the controller is its single writer.
type Session struct {
	Addr         string    `json:"addr"`
	LastActivity time.Time `json:"last_activity"`
	// InterruptPending is armed when the channel reopens after a
	// disconnect and consumed by the first Resolve that evaluates it.
	InterruptPending bool `json:"interrupt_pending"`
	// Captured holds the original target while the session sits at the
	// recovery prompt.
	Captured *State `json:"captured,omitempty"`
}
