package registry

import (
	"reflect"
	"weak"

	"github.com/arthur-debert/redist/pkg/errors"
)

// Host is a component whose state changes through SetState. done, when not
// nil, runs after the host has applied the state.
type Host[S any] interface {
	SetState(state S, done func())
}

// Connected wraps a Host so that every SetState also emits its action with
// the new state. The wrapped host is left untouched.
type Connected[S any] struct {
	host     Host[S]
	registry *Registry
	action   string
}

// SetState applies state on the host, then emits the action with state.
func (c *Connected[S]) SetState(state S, done func()) {
	c.host.SetState(state, done)
	c.Notify(state)
}

// Notify emits the action with state without touching the host. It lets a
// caller that already applied state publish it through another connection.
func (c *Connected[S]) Notify(state S) {
	c.registry.Emit(c.action, state)
}

// Action returns the action emitted on each SetState
func (c *Connected[S]) Action() string {
	return c.action
}

// Host returns the wrapped host
func (c *Connected[S]) Host() Host[S] {
	return c.host
}

// Connect returns a wrapper around host that emits action on r after every
// SetState. Hosts are identified by pointer: while a wrapper for the same
// host and action on the same store is still reachable, Connect returns it,
// so emits never compound. The store only references wrappers weakly, so
// dropping every reference to a connected host lets it be collected.
// Non-pointer hosts cannot be identified and get a new wrapper each time.
func Connect[S any](r *Registry, host Host[S], action string) (*Connected[S], error) {
	if r == nil {
		return nil, errors.New(errors.ErrInvalidHost, "registry cannot be nil")
	}
	if host == nil || isNilPointer(host) {
		return nil, errors.New(errors.ErrInvalidHost, "host cannot be nil")
	}
	if action == "" {
		return nil, errors.New(errors.ErrInvalidAction, "action name cannot be empty")
	}

	fresh := &Connected[S]{host: host, registry: r, action: action}

	rv := reflect.ValueOf(host)
	if rv.Kind() != reflect.Pointer {
		return fresh, nil
	}

	create := func() (any, resolver) {
		wp := weak.Make(fresh)
		return fresh, func() any {
			if c := wp.Value(); c != nil {
				return c
			}
			return nil
		}
	}

	v, created := r.store.connection(connKey{host: rv.Pointer(), action: action}, create)
	c, ok := v.(*Connected[S])
	if !ok || c.host != host {
		// Same host connected with a different state type.
		return fresh, nil
	}
	if created {
		r.logger.Debug().Str("action", action).Msg("Host connected")
	}
	return c, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
