package script

import (
	"slices"
	"strings"
	"sync"
)

// Factory creates a fresh routine instance for one run.
type Factory func() Routine

var (
	routineRegistry   = make(map[string]Factory)
	routineRegistryMu sync.RWMutex
)

// Register makes a routine available by name. It is meant to be called from
// init() functions. Names are case-insensitive.
func Register(name string, f Factory) {
	routineRegistryMu.Lock()
	defer routineRegistryMu.Unlock()
	routineRegistry[strings.ToLower(name)] = f
}

func Unregister(name string) {
	routineRegistryMu.Lock()
	defer routineRegistryMu.Unlock()
	delete(routineRegistry, strings.ToLower(name))
}

// Lookup returns the factory registered under name, or nil.
func Lookup(name string) Factory {
	routineRegistryMu.RLock()
	defer routineRegistryMu.RUnlock()
	return routineRegistry[strings.ToLower(name)]
}

// Names returns all registered routine names, sorted.
func Names() []string {
	routineRegistryMu.RLock()
	defer routineRegistryMu.RUnlock()
	names := make([]string, 0, len(routineRegistry))
	for name := range routineRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
