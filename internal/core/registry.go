package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry   = make(map[string]EntityKind)
	registryMu sync.RWMutex
)

// Register adds an entity kind. Names are case-insensitive.
// Panics if a kind with the same name is already registered.
func Register(kind EntityKind) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := strings.ToLower(kind.Name)
	if key == "" {
		panic("entity kind has no name")
	}
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("entity kind already registered: %s", kind.Name))
	}
	registry[key] = kind
}

// Lookup returns the kind whose name matches table, ignoring case.
func Lookup(table string) (EntityKind, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kind, ok := registry[strings.ToLower(table)]
	return kind, ok
}

// Kinds returns every registered kind sorted by name.
func Kinds() []EntityKind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]EntityKind, 0, len(registry))
	for _, kind := range registry {
		result = append(result, kind)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result
}

// KindCount returns the number of registered kinds.
func KindCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
