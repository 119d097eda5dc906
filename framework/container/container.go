package container

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a value from the container it is registered in.
type Factory func(c *Container) (any, error)

// Lifetime selects how often a registration's factory runs.
type Lifetime int

const (
	// Transient registrations run their factory on every Resolve.
	Transient Lifetime = iota
	// Singleton registrations run their factory at most once per container.
	Singleton
)

func (l Lifetime) String() string {
	if l == Singleton {
		return "singleton"
	}
	return "transient"
}

// singleton is an exactly-once cell. A failed factory is not retried.
type singleton struct {
	once    sync.Once
	factory Factory
	value   any
	err     error
}

func (s *singleton) get(c *Container) (any, error) {
	s.once.Do(func() {
		s.value, s.err = s.factory(c)
	})
	return s.value, s.err
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is one built configuration: registrations keyed by capability,
// each either singleton or transient.
//
// Registration is append-only. The first registration of a key wins and later
// ones are ignored, so inherited declarations can never be replaced at
// runtime. Resolve and Activate are safe for concurrent use.
type Container struct {
	// Name is the definition name the container was built from.
	Name string
	// Extends is the parent definition name, kept for display.
	Extends string

	types  *TypeRegistry
	logger *log.Logger

	mu         sync.RWMutex
	singletons map[Key]*singleton
	transients map[Key]Factory
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for activation debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// New creates an empty container. types supplies the constructors used by
// Activate; nil means no type can be activated.
func New(name, extends string, types *TypeRegistry, opts ...Option) *Container {
	if types == nil {
		types = NewTypeRegistry()
	}
	c := &Container{
		Name:       name,
		Extends:    extends,
		types:      types,
		logger:     log.New(io.Discard),
		singletons: make(map[Key]*singleton),
		transients: make(map[Key]Factory),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds factory under key with the given lifetime. It reports whether
// the registration was added; an existing registration of the same lifetime
// is kept.
func (c *Container) Register(key Key, factory Factory, lifetime Lifetime) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lifetime == Singleton {
		if _, ok := c.singletons[key]; ok {
			return false
		}
		c.singletons[key] = &singleton{factory: factory}
		return true
	}

	if _, ok := c.transients[key]; ok {
		return false
	}
	c.transients[key] = factory
	return true
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton(container.KeyOf[Cache](), func(c *container.Container) (any, error) {
//	    return cache.New(), nil
//	})
func (c *Container) Singleton(key Key, factory Factory) bool {
	return c.Register(key, factory, Singleton)
}

// Bind registers a transient factory: a new instance on every Resolve.
func (c *Container) Bind(key Key, factory Factory) bool {
	return c.Register(key, factory, Transient)
}

// Instance registers a pre-built value as a singleton.
//
//	c.Instance(container.KeyOf[*config.Config](), cfg)
func (c *Container) Instance(key Key, instance any) bool {
	return c.Singleton(key, func(*Container) (any, error) { return instance, nil })
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the value registered under key. Singletons are looked up
// before transients. A key with no registration yields ErrNotRegistered.
func (c *Container) Resolve(key Key) (any, error) {
	c.mu.RLock()
	s, isSingleton := c.singletons[key]
	f, isTransient := c.transients[key]
	c.mu.RUnlock()

	switch {
	case isSingleton:
		return s.get(c)
	case isTransient:
		return f(c)
	}
	return nil, fmt.Errorf("%s in container %q: %w", key, c.Name, ErrNotRegistered)
}

// Activate constructs a new instance of the concrete type key using its single
// constructor.
//
// Each constructor parameter is filled, in order, from the params entry with
// exactly the same name, then from Resolve, then by activating the parameter
// type itself. There is no cycle detection on that last step.
func (c *Container) Activate(key Key, params []Parameter) (any, error) {
	desc, ok := c.types.LookupKey(key)
	if !ok {
		return nil, &ActivationError{Type: key, Reason: "it is not a known type"}
	}
	return c.ActivateDescriptor(desc, params)
}

// ActivateDescriptor is Activate with the descriptor given directly. Key
// lookups only answer with the first descriptor registered for a Go type.
func (c *Container) ActivateDescriptor(desc TypeDescriptor, params []Parameter) (any, error) {
	key := desc.Type
	switch n := len(desc.Constructors); {
	case n == 0:
		return nil, &ActivationError{Type: key, Reason: "it has no constructor"}
	case n > 1:
		return nil, &ActivationError{Type: key, Reason: "it has > 1 constructor"}
	}

	ctor := desc.Constructors[0]
	args := make(Args, len(ctor.Params))

	for i, p := range ctor.Params {
		if v, ok := lookupParameter(params, p.Name); ok {
			if !p.Type.accepts(v) {
				return nil, &CoercionError{Type: key, Param: p, Value: v}
			}
			args[i] = v
			continue
		}

		v, err := c.Resolve(p.Type)
		if err != nil && !errors.Is(err, ErrNotRegistered) {
			return nil, err
		}
		if v == nil {
			v, err = c.Activate(p.Type, nil)
			if err != nil {
				return nil, &ActivationError{Type: key, Param: &p, Cause: err}
			}
		}
		args[i] = v
	}

	instance, err := ctor.New(args)
	if err != nil {
		return nil, &ActivationError{Type: key, Reason: "its constructor failed", Cause: err}
	}

	c.logger.Debug("Activated type", "container", c.Name, "type", key, "id", desc.ID)
	return instance, nil
}

// ── Assertions ────────────────────────────────────────────────────────────────

// Assert fails unless key is registered with any lifetime.
func (c *Container) Assert(key Key) error {
	if c.Registered(key) {
		return nil
	}
	return c.notRegistered(key)
}

// AssertSingleton fails unless key is registered as a singleton.
func (c *Container) AssertSingleton(key Key) error {
	c.mu.RLock()
	_, isSingleton := c.singletons[key]
	_, isTransient := c.transients[key]
	c.mu.RUnlock()

	switch {
	case isSingleton:
		return nil
	case isTransient:
		return &ConfigurationError{
			Container: c.Name,
			Subject:   key.String(),
			Reason:    "was registered but it was expected to be a singleton and was not (singleInstance=false or undefined)",
		}
	}
	return c.notRegistered(key)
}

// AssertTransient fails unless key is registered as a transient.
func (c *Container) AssertTransient(key Key) error {
	c.mu.RLock()
	_, isSingleton := c.singletons[key]
	_, isTransient := c.transients[key]
	c.mu.RUnlock()

	switch {
	case isTransient:
		return nil
	case isSingleton:
		return &ConfigurationError{
			Container: c.Name,
			Subject:   key.String(),
			Reason:    "was registered but it was expected to be a transient and was not (singleInstance=true)",
		}
	}
	return c.notRegistered(key)
}

func (c *Container) notRegistered(key Key) error {
	return &ConfigurationError{
		Container: c.Name,
		Subject:   key.String(),
		Reason:    "the expected type was not registered with the container",
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Registered reports whether key has a registration of any lifetime.
func (c *Container) Registered(key Key) bool {
	_, ok := c.Lifetime(key)
	return ok
}

// Lifetime returns the lifetime key resolves with. Singletons shadow
// transients of the same key.
func (c *Container) Lifetime(key Key) (Lifetime, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.singletons[key]; ok {
		return Singleton, true
	}
	if _, ok := c.transients[key]; ok {
		return Transient, true
	}
	return Transient, false
}

// Keys returns every registered key, sorted by name.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	out := make([]Key, 0, len(c.singletons)+len(c.transients))
	for k := range c.singletons {
		out = append(out, k)
	}
	for k := range c.transients {
		if _, already := c.singletons[k]; !already {
			out = append(out, k)
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Key) int { return strings.Compare(a.String(), b.String()) })
	return out
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is the typed form of Container.Resolve.
//
// When nothing is registered under T and the type registry describes T as a
// concrete type, a new instance is activated instead.
//
//	store, err := container.Resolve[Store](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	key := KeyOf[T]()

	instance, err := c.Resolve(key)
	if err != nil && !errors.Is(err, ErrNotRegistered) {
		return zero, err
	}
	if instance == nil {
		if _, ok := c.types.LookupKey(key); !ok {
			if err == nil {
				err = fmt.Errorf("%s in container %q resolved to nil: %w", key, c.Name, ErrNotRegistered)
			}
			return zero, err
		}
		if instance, err = c.Activate(key, nil); err != nil {
			return zero, err
		}
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%s]: resolved to %T", key, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}
