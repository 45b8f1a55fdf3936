package bridge

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(zerolog.Logger) Bridge)
)

// Register adds a bridge factory to the registry.
// Called by bridge implementations in their init() functions.
func Register(name string, factory func(zerolog.Logger) Bridge) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a bridge factory by name.
func Get(name string) (func(zerolog.Logger) Bridge, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New creates a bridge instance by registered name.
func New(name string, logger zerolog.Logger) (Bridge, error) {
	if name == "" {
		return nil, fmt.Errorf("bridge name not specified")
	}

	factory, ok := Get(name)
	if !ok {
		return nil, &UnknownBridgeError{
			Name:      name,
			Available: List(),
		}
	}
	return factory(logger), nil
}

// List returns all registered bridge names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a bridge name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownBridgeError is returned when an unknown bridge name is requested.
type UnknownBridgeError struct {
	Name      string
	Available []string
}

func (e *UnknownBridgeError) Error() string {
	return fmt.Sprintf("unknown bridge %q\nAvailable bridges: %v\nHint: Check the bridge field in duckbridge.yaml", e.Name, e.Available)
}
