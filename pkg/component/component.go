// Package component provides a minimal stateful UI component whose state is
// a flat map updated by shallow merge.
package component

import (
	"maps"
	"sync"
)

// State is a component's state
type State = map[string]any

// Component holds State and applies partial updates through SetState.
type Component struct {
	name string

	mu    sync.RWMutex
	state State
}

// New creates a component with a copy of initial as its state.
func New(name string, initial State) *Component {
	state := make(State, len(initial))
	maps.Copy(state, initial)
	return &Component{name: name, state: state}
}

// Name returns the component name
func (c *Component) Name() string {
	return c.name
}

// State returns a copy of the current state
func (c *Component) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(State, len(c.state))
	maps.Copy(out, c.state)
	return out
}

// SetState merges partial into the state, replacing top-level keys, then
// calls done if it is not nil.
func (c *Component) SetState(partial State, done func()) {
	c.mu.Lock()
	maps.Copy(c.state, partial)
	c.mu.Unlock()

	if done != nil {
		done()
	}
}
