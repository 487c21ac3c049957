package registry

import (
	"sort"
	"sync"
)

// Namespace is a set of named stores. A store is created the first time its
// key is opened and lives as long as the namespace; there is no removal.
type Namespace struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

// NewNamespace creates an empty Namespace
func NewNamespace() *Namespace {
	return &Namespace{
		stores: make(map[string]*Store),
	}
}

// Open returns the store registered under key, creating it if needed.
// Opening an existing key never resets it.
func (n *Namespace) Open(key string) *Store {
	key = normalizeKey(key)

	n.mu.RLock()
	s, ok := n.stores[key]
	n.mu.RUnlock()
	if ok {
		return s
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if s, ok := n.stores[key]; ok {
		return s
	}
	s = newStore(key)
	n.stores[key] = s
	return s
}

// Has checks if a store has been opened under key
func (n *Namespace) Has(key string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	_, exists := n.stores[normalizeKey(key)]
	return exists
}

// List returns all opened keys in sorted order
func (n *Namespace) List() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	keys := make([]string, 0, len(n.stores))
	for key := range n.stores {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// Count returns the number of opened stores
func (n *Namespace) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.stores)
}

func normalizeKey(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}
