package registry

import (
	"fmt"

	"github.com/arthur-debert/redist/pkg/errors"
	"github.com/arthur-debert/redist/pkg/logging"
	"github.com/rs/zerolog"
)

// Scope selects where a registry's store lives.
type Scope int

const (
	// Global registries share the store named by their key.
	Global Scope = iota
	// Local registries own a private store.
	Local
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope converts "global" or "local" to a Scope.
func ParseScope(name string) (Scope, error) {
	switch name {
	case "global", "":
		return Global, nil
	case "local":
		return Local, nil
	default:
		return Global, errors.Newf(errors.ErrInvalidInput, "unknown scope %q", name)
	}
}

// Registry delivers notifications between consumers keyed by action name.
type Registry struct {
	scope  Scope
	store  *Store
	logger zerolog.Logger
}

type options struct {
	key       string
	scope     Scope
	namespace *Namespace
	logger    *zerolog.Logger
}

// Option configures New.
type Option func(*options)

// WithKey sets the register key. An empty key means DefaultKey.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithScope selects a global or local store.
func WithScope(scope Scope) Option {
	return func(o *options) { o.scope = scope }
}

// WithNamespace sets the namespace used for global scope.
func WithNamespace(ns *Namespace) Option {
	return func(o *options) { o.namespace = ns }
}

// WithLogger sets the logger that receives listener faults.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger }
}

// New creates a Registry. By default it is global, keyed by DefaultKey, in
// the process namespace.
func New(opts ...Option) *Registry {
	o := options{scope: Global}
	for _, opt := range opts {
		opt(&o)
	}

	key := normalizeKey(o.key)

	var store *Store
	if o.scope == Local {
		store = newStore(key)
	} else {
		o.scope = Global
		ns := o.namespace
		if ns == nil {
			ns = Process()
		}
		store = ns.Open(key)
	}

	logger := logging.GetLogger("registry")
	if o.logger != nil {
		logger = *o.logger
	}

	return &Registry{
		scope:  o.scope,
		store:  store,
		logger: logger.With().Str("key", key).Str("scope", o.scope.String()).Logger(),
	}
}

// Key returns the register key
func (r *Registry) Key() string {
	return r.store.Key()
}

// Scope returns the registry scope
func (r *Registry) Scope() Scope {
	return r.scope
}

// Subscribe registers fn for action and returns its listener id.
func (r *Registry) Subscribe(action string, fn Callback) (ListenerID, error) {
	if action == "" {
		return 0, errors.New(errors.ErrInvalidAction, "action name cannot be empty")
	}
	if fn == nil {
		return 0, errors.Newf(errors.ErrInvalidCallback, "callback for action '%s' cannot be nil", action).
			WithDetail("action", action)
	}

	id := r.store.add(action, fn)
	r.logger.Trace().Str("action", action).Uint64("listener_id", uint64(id)).Msg("Listener subscribed")
	return id, nil
}

// Unsubscribe removes the listener registered under (action, id). Unknown
// pairs are ignored.
func (r *Registry) Unsubscribe(action string, id ListenerID) {
	if !r.store.remove(action, id) {
		return
	}
	r.logger.Trace().Str("action", action).Uint64("listener_id", uint64(id)).Msg("Listener unsubscribed")
}

// Emit calls every listener of action in ascending id order with args.
// A listener that panics is logged and skipped; the rest still run. Entries
// found without a callback are removed once delivery is over.
func (r *Registry) Emit(action string, args ...any) {
	listeners := r.store.snapshot(action)
	if len(listeners) == 0 {
		return
	}

	var invalid []ListenerID
	for _, l := range listeners {
		if l.fn == nil {
			invalid = append(invalid, l.id)
			continue
		}
		r.invoke(action, l, args)
	}

	if len(invalid) > 0 {
		removed := r.store.purge(action, invalid)
		r.logger.Debug().Str("action", action).Int("removed", removed).Msg("Removed invalid listeners")
	}
}

func (r *Registry) invoke(action string, l listener, args []any) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("action", action).
				Uint64("listener_id", uint64(l.id)).
				Interface("panic", rec).
				Msg("Listener panicked")
		}
	}()
	l.fn(args...)
}

// Actions returns every action that has had a subscription, sorted.
func (r *Registry) Actions() []string {
	return r.store.actionNames()
}

// Listeners returns the listener ids of action in ascending order.
func (r *Registry) Listeners(action string) []ListenerID {
	return r.store.listenerIDs(action)
}

// Count returns the number of listeners of action.
func (r *Registry) Count(action string) int {
	return len(r.Listeners(action))
}
