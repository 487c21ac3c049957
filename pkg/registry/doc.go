// Package registry provides a scoped publish/subscribe registry for
// broadcasting component state changes to decoupled listeners.
//
// Listeners subscribe to a string action and receive every argument list
// emitted for it, synchronously and in subscription order. A Registry is a
// handle over a Store. Global registries share the Store named by their key
// in a Namespace (the process namespace unless one is injected), so modules
// that never exchange a reference can still talk to each other. Local
// registries own a private Store.
//
//	r := registry.New(registry.WithKey("editor"))
//	id, err := r.Subscribe("update", func(args ...any) {
//	    fmt.Println("state is now", args[0])
//	})
//	r.Emit("update", map[string]any{"dirty": true})
//	r.Unsubscribe("update", id)
//
// Connect wraps a component's SetState so every mutation also emits.
package registry
