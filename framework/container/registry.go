package container

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// TypeRegistry maps document type identifiers to type descriptors. The host
// fills it at startup, usually through providers.
type TypeRegistry struct {
	mu    sync.RWMutex
	byID  map[string]TypeDescriptor
	byKey map[Key]TypeDescriptor
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byID:  make(map[string]TypeDescriptor),
		byKey: make(map[Key]TypeDescriptor),
	}
}

// Register adds a descriptor. IDs are unique; several IDs may describe the
// same Go type, in which case the first one answers LookupKey.
func (r *TypeRegistry) Register(d TypeDescriptor) error {
	if err := check(d); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; ok {
		return fmt.Errorf("type %q is already registered", d.ID)
	}
	r.byID[d.ID] = d
	if _, ok := r.byKey[d.Type]; !ok {
		r.byKey[d.Type] = d
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *TypeRegistry) MustRegister(d TypeDescriptor) {
	if err := r.Register(d); err != nil {
		panic("container: " + err.Error())
	}
}

func check(d TypeDescriptor) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("type descriptor for %s has no id", d.Type)
	}
	if d.Type.IsZero() {
		return fmt.Errorf("type %q has no Go type", d.ID)
	}
	for _, capability := range d.Capabilities {
		if !d.Type.Implements(capability) {
			return fmt.Errorf("type %q (%s) does not implement %s", d.ID, d.Type, capability)
		}
	}
	for _, ctor := range d.Constructors {
		if ctor.New == nil {
			return fmt.Errorf("type %q has a constructor without a function", d.ID)
		}
		for _, p := range ctor.Params {
			if p.Name == "" || p.Type.IsZero() {
				return fmt.Errorf("type %q has a constructor parameter without a name or type", d.ID)
			}
		}
	}
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *TypeRegistry) Lookup(id string) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	return d, ok
}

// LookupKey returns the descriptor of a concrete type.
func (r *TypeRegistry) LookupKey(k Key) (TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[k]
	return d, ok
}

// IDs returns every registered identifier, sorted.
func (r *TypeRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
