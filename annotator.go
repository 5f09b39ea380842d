package navguard

import (
	"strings"
	"sync"
)

// StateAnnotator mirrors navigation into display state: it sets the document
// title from the target state's Title and exposes a normalized current state
// name (dots replaced by dashes, suitable for a CSS class). It observes
// every navigation start independently of the guard's outcome.
type StateAnnotator struct {
	document Document

	mu      sync.Mutex
	current string
}

// NewStateAnnotator describes the newstateannotator operation and its observable behavior.
//
// NewStateAnnotator may return an error when input validation, dependency calls, or security checks fail.
// NewStateAnnotator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStateAnnotator(document Document) *StateAnnotator {
	return &StateAnnotator{
		document: document,
	}
}

// Apply records the target state. States with an empty name are ignored.
func (a *StateAnnotator) Apply(to State) {
	if a == nil || to.Name == "" {
		return
	}

	if to.Data.Title != "" && a.document != nil {
		a.document.SetTitle(to.Data.Title)
	}

	name := strings.ReplaceAll(to.Name, ".", "-")

	a.mu.Lock()
	a.current = name
	a.mu.Unlock()

	if a.document != nil {
		a.document.SetStateName(name)
	}
}

// CurrentStateName returns the normalized name of the last applied state.
func (a *StateAnnotator) CurrentStateName() string {
	if a == nil {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}
