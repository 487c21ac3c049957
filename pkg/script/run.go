package script

import (
	"context"
	"fmt"
	"slices"

	"github.com/arthur-debert/redist/pkg/component"
	"github.com/arthur-debert/redist/pkg/logging"
	"github.com/arthur-debert/redist/pkg/registry"
	"github.com/rs/zerolog"
)

// Delivery records one listener invocation
type Delivery struct {
	Step     int                 `json:"step"`
	Action   string              `json:"action"`
	Listener string              `json:"listener"`
	ID       registry.ListenerID `json:"id"`
	Args     []any               `json:"args"`
	Panicked bool                `json:"panicked,omitempty"`
}

// Rejection records a step the registry refused
type Rejection struct {
	Step  int    `json:"step"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// Result is everything a run observed
type Result struct {
	Deliveries []Delivery                 `json:"deliveries"`
	Rejections []Rejection                `json:"rejections,omitempty"`
	States     map[string]component.State `json:"states,omitempty"`
}

// Options configures Run
type Options struct {
	// Namespace backs global registries. A fresh one is used when nil so a
	// run never touches the process namespace.
	Namespace *registry.Namespace
	Logger    *zerolog.Logger

	// DefaultKey and DefaultScope apply to registries declared without a
	// key or scope.
	DefaultKey   string
	DefaultScope registry.Scope
}

type subscription struct {
	registry string
	action   string
	listener string
}

type runner struct {
	result     *Result
	registries map[string]*registry.Registry
	components map[string]*component.Component
	wrappers   map[string][]*registry.Connected[component.State]
	ids        map[subscription][]registry.ListenerID
	step       int
}

// Run executes doc step by step. It stops early only when ctx is done.
func Run(ctx context.Context, doc *Document, opts Options) (*Result, error) {
	logger := logging.GetLogger("script")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	ns := opts.Namespace
	if ns == nil {
		ns = registry.NewNamespace()
	}

	r := &runner{
		result:     &Result{Deliveries: []Delivery{}},
		registries: make(map[string]*registry.Registry, len(doc.Registries)),
		components: make(map[string]*component.Component, len(doc.Components)),
		wrappers:   make(map[string][]*registry.Connected[component.State], len(doc.Components)),
		ids:        make(map[subscription][]registry.ListenerID),
	}

	for _, spec := range doc.Registries {
		scope := opts.DefaultScope
		if spec.Scope != "" {
			var err error
			if scope, err = registry.ParseScope(spec.Scope); err != nil {
				return nil, err
			}
		}
		key := spec.Key
		if key == "" {
			key = opts.DefaultKey
		}
		r.registries[spec.Name] = registry.New(
			registry.WithKey(key),
			registry.WithScope(scope),
			registry.WithNamespace(ns),
			registry.WithLogger(logger),
		)
	}
	for _, spec := range doc.Components {
		r.components[spec.Name] = component.New(spec.Name, spec.State)
	}

	done := logging.LogOperationStart(logger, "script")
	defer done()

	for i, step := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		r.step = i
		r.apply(step)
	}

	r.result.States = make(map[string]component.State, len(r.components))
	for name, c := range r.components {
		r.result.States[name] = c.State()
	}
	return r.result, nil
}

func (r *runner) apply(step Step) {
	switch step.Op {
	case OpSubscribe:
		reg := r.registries[step.Registry]
		key := subscription{registry: step.Registry, action: step.Action, listener: step.Listener}
		id := new(registry.ListenerID)
		var err error
		*id, err = reg.Subscribe(step.Action, r.listener(step.Action, step.Listener, step.Panic, id))
		if err != nil {
			r.reject(step, err)
			return
		}
		r.ids[key] = append(r.ids[key], *id)
	case OpUnsubscribe:
		// drops every subscription made under the listener name
		key := subscription{registry: step.Registry, action: step.Action, listener: step.Listener}
		for _, id := range r.ids[key] {
			r.registries[step.Registry].Unsubscribe(step.Action, id)
		}
		delete(r.ids, key)
	case OpEmit:
		r.registries[step.Registry].Emit(step.Action, step.Args...)
	case OpConnect:
		c, err := registry.Connect[component.State](r.registries[step.Registry], r.components[step.Component], step.Action)
		if err != nil {
			r.reject(step, err)
			return
		}
		// a repeated connect returns a wrapper already in the list
		if !slices.Contains(r.wrappers[step.Component], c) {
			r.wrappers[step.Component] = append(r.wrappers[step.Component], c)
		}
	case OpSetState:
		r.setState(step.Component, step.State)
	}
}

// setState applies state to the component once, then emits it through every
// connection of the component in the order they were made.
func (r *runner) setState(name string, state component.State) {
	wrappers := r.wrappers[name]
	if len(wrappers) == 0 {
		r.components[name].SetState(state, nil)
		return
	}
	wrappers[0].SetState(state, nil)
	for _, w := range wrappers[1:] {
		w.Notify(state)
	}
}

// listener returns a callback that records each delivery. id is filled in
// once Subscribe returns, before any emit can reach the callback.
func (r *runner) listener(action, name string, panics bool, id *registry.ListenerID) registry.Callback {
	return func(args ...any) {
		d := Delivery{
			Step:     r.step,
			Action:   action,
			Listener: name,
			ID:       *id,
			Args:     args,
			Panicked: panics,
		}
		r.result.Deliveries = append(r.result.Deliveries, d)
		if panics {
			panic(fmt.Sprintf("listener %s failed on %s", name, action))
		}
	}
}

func (r *runner) reject(step Step, err error) {
	r.result.Rejections = append(r.result.Rejections, Rejection{
		Step:  r.step,
		Op:    step.Op,
		Error: err.Error(),
	})
}
