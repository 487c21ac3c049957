package registry

import (
	"sort"
	"sync"
)

// ListenerID identifies one subscription within a store. IDs start at 1.
type ListenerID uint64

// Callback receives the arguments passed to Emit.
type Callback func(args ...any)

// listener is one snapshotted subscription.
type listener struct {
	id ListenerID
	fn Callback
}

// connKey identifies a Connect wrapper by host address and action.
type connKey struct {
	host   uintptr
	action string
}

// resolver returns the wrapper an entry points at, or nil once it has been
// collected.
type resolver func() any

// Store holds the action table and id counter shared by every registry
// opened on it. It is only mutated through Registry operations.
type Store struct {
	key string

	mu          sync.RWMutex
	actions     map[string]map[ListenerID]Callback
	nextID      ListenerID
	connections map[connKey]resolver
}

func newStore(key string) *Store {
	return &Store{
		key:         key,
		actions:     make(map[string]map[ListenerID]Callback),
		connections: make(map[connKey]resolver),
	}
}

// Key returns the register key the store was opened under
func (s *Store) Key() string {
	return s.key
}

func (s *Store) add(action string, fn Callback) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	table, ok := s.actions[action]
	if !ok {
		table = make(map[ListenerID]Callback)
		s.actions[action] = table
	}
	table[id] = fn
	return id
}

// remove deletes the listener and reports whether it was present.
func (s *Store) remove(action string, id ListenerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.actions[action]
	if !ok {
		return false
	}
	if _, present := table[id]; !present {
		return false
	}
	delete(table, id)
	return true
}

// snapshot copies the listeners of action in ascending id order.
func (s *Store) snapshot(action string) []listener {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.actions[action]
	if !ok || len(table) == 0 {
		return nil
	}

	out := make([]listener, 0, len(table))
	for id, fn := range table {
		out = append(out, listener{id: id, fn: fn})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// purge deletes entries of action that are still invalid. It returns how
// many were removed.
func (s *Store) purge(action string, ids []ListenerID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.actions[action]
	if !ok {
		return 0
	}

	removed := 0
	for _, id := range ids {
		if fn, present := table[id]; present && fn == nil {
			delete(table, id)
			removed++
		}
	}
	return removed
}

func (s *Store) actionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) listenerIDs(action string) []ListenerID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := s.actions[action]
	ids := make([]ListenerID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// connection returns the live wrapper stored under key, or stores the one
// built by create and reports true. Entries hold the wrapper weakly, so a
// wrapper nobody references (and the host it holds) can be collected.
// create runs with the lock held and must not touch the store.
func (s *Store) connection(key connKey, create func() (any, resolver)) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneConnections()
	if resolve, ok := s.connections[key]; ok {
		if c := resolve(); c != nil {
			return c, false
		}
	}
	c, resolve := create()
	s.connections[key] = resolve
	return c, true
}

// pruneConnections drops entries whose wrapper has been collected. Callers
// hold the write lock.
func (s *Store) pruneConnections() {
	for key, resolve := range s.connections {
		if resolve() == nil {
			delete(s.connections, key)
		}
	}
}
