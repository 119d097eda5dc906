package container

import (
	"fmt"
	"reflect"
)

// ── Provider interface ────────────────────────────────────────────────────────

// Provider contributes types to the registry and prepares every container
// built from configuration.
//
// Register runs once, before any document is loaded, so the type identifiers
// it adds are available to every definition. Boot runs once per built
// container, after all of its declarations are registered, making it safe to
// resolve or assert registrations there.
//
//	type StoreProvider struct{ container.BaseProvider }
//
//	func (p *StoreProvider) Register(types *container.TypeRegistry) error {
//	    return types.Register(container.Describe[*FileStore]("store.file").
//	        As(container.KeyOf[Store]()).
//	        Constructor(newFileStore, container.P[string]("path")).
//	        Descriptor())
//	}
//
//	func (p *StoreProvider) Boot(c *container.Container) error {
//	    return c.AssertSingleton(container.KeyOf[Store]())
//	}
type Provider interface {
	// Register adds type descriptors. Do NOT touch containers here.
	Register(types *TypeRegistry) error

	// Boot is called for each built container.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op implementations of both
// methods. Embed it and override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Register(_ *TypeRegistry) error { return nil }
func (p *BaseProvider) Boot(_ *Container) error        { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of Providers.
type ProviderRegistry struct {
	types      *TypeRegistry
	providers  []Provider
	registered map[Provider]bool
}

// NewProviderRegistry creates a registry that registers into types.
func NewProviderRegistry(types *TypeRegistry) *ProviderRegistry {
	return &ProviderRegistry{
		types:      types,
		registered: make(map[Provider]bool),
	}
}

// Register adds a provider and calls its Register method. Adding the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider Provider) error {
	if r.registered[provider] {
		return nil
	}
	if err := provider.Register(r.types); err != nil {
		return fmt.Errorf("register %s: %w", providerName(provider), err)
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)
	return nil
}

// Boot calls Boot on every provider, in registration order, for c. The first
// error stops booting.
func (r *ProviderRegistry) Boot(c *Container) error {
	for _, provider := range r.providers {
		if err := provider.Boot(c); err != nil {
			return fmt.Errorf("boot %s for container %q: %w", providerName(provider), c.Name, err)
		}
	}
	return nil
}

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []Provider { return r.providers }

// Types returns the registry providers register into.
func (r *ProviderRegistry) Types() *TypeRegistry { return r.types }

func providerName(p Provider) string {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
