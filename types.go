package navguard

import "context"

// State is a named, addressable view in the client application. Names are
// dotted and hierarchical ("a.b.c"). States are declared once through the
// builder and never mutated afterwards.
type State struct {
	Name string
	Data StateData
}

// StateData is the navigation metadata the shell core reads from a state.
// Host frameworks may carry additional metadata elsewhere; the guard and
// annotator only look at these fields.
type StateData struct {
	// Authenticate marks the state as requiring a current token. When
	// false, Claims are never evaluated.
	Authenticate bool

	// Claims is the ordered list of claim requirements evaluated against
	// the current token on every navigation into this state.
	Claims []ClaimRequirement

	// Title, when non-empty, is written to the document title whenever
	// navigation into this state starts.
	Title string
}

// ClaimRequirement is a (type, value) pair the current token's claims must
// contain. When unmet, exactly one fallback is expected: Redirect (a hard
// location redirect) or State (a router navigation). Redirect wins when both
// are set; neither set is a configuration error surfaced as
// [ErrClaimFallbackMissing] during evaluation.
type ClaimRequirement struct {
	Type     string
	Value    string
	Redirect string
	State    string
}

// NavigationEvent represents an in-flight transition to a target state. The
// guard cancels the transition by calling PreventDefault within the same
// synchronous turn as the notification.
type NavigationEvent interface {
	PreventDefault()
	DefaultPrevented() bool
}

// Router is the host routing engine. OnNavigationStart must invoke the hook
// synchronously before each transition; a non-nil error from the hook aborts
// the host's navigation pipeline.
type Router interface {
	Register(state State) error
	Current() State
	URL(name string) string
	Go(name string) error
	OnNavigationStart(hook func(ev NavigationEvent, to State) error)
}

// Location is the browser-like location collaborator used for hard
// redirects (login bounces and claim Redirect fallbacks).
type Location interface {
	Assign(url string)
}

// Document receives display side effects from the state annotator. A nil
// Document disables both side effects; the annotator still tracks the
// normalized current state name.
type Document interface {
	SetTitle(title string)
	SetStateName(name string)
}

// ConfigFunc is a configuration callback registered through
// [Builder.WithConfigFunc]. All config callbacks run in registration order
// during [Shell.Run], before any state registration or run callback.
type ConfigFunc func(ctx context.Context) error

// RunFunc is a startup callback registered through [Builder.WithRunFunc].
// Run callbacks execute in registration order after state registration.
type RunFunc func(ctx context.Context) error

// Decision is the outcome of a single guard evaluation.
type Decision uint8

const (
	// DecisionAllowed is an exported constant or variable used by the navigation shell.
	DecisionAllowed Decision = iota
	// DecisionLoginRedirect is an exported constant or variable used by the navigation shell.
	DecisionLoginRedirect
	// DecisionClaimDenied is an exported constant or variable used by the navigation shell.
	DecisionClaimDenied
)

// String describes the string operation and its observable behavior.
//
// String may return an error when input validation, dependency calls, or security checks fail.
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionLoginRedirect:
		return "login_redirect"
	case DecisionClaimDenied:
		return "claim_denied"
	default:
		return "unknown"
	}
}
