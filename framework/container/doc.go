// Package container provides the micro-container built for every
// configuration definition, the type registry it activates types from, and
// the Provider system hosts use to fill that registry.
//
// # Overview
//
// A Container maps capability keys to factories. Each registration is either
// a singleton, constructed at most once per container even under concurrent
// first access, or a transient, constructed on every Resolve. The first
// registration of a key wins.
//
// Go has no runtime constructor discovery, so concrete types are described
// up front: a TypeDescriptor names the document identifier, the capabilities
// the type is registered under and its constructor with an ordered parameter
// list. Activate walks that list to fill each parameter from configuration
// values, from the container, or by activating the parameter type.
//
// # Container Lifecycle
//
//  1. Create a registry: types := container.NewTypeRegistry()
//  2. Register providers: providers.Register(&StoreProvider{})
//  3. Build containers from configuration (see the builder package)
//  4. Boot each container: providers.Boot(c)
//  5. Resolve
//
// # Describing types
//
//	types.MustRegister(container.Describe[*FileStore]("store.file").
//	    As(container.KeyOf[Store]()).
//	    Constructor(func(a container.Args) (any, error) {
//	        return &FileStore{Path: container.Arg[string](a, 0)}, nil
//	    }, container.P[string]("path")).
//	    Descriptor())
//
// # Bindings
//
//	// Singleton: created once, reused
//	c.Singleton(container.KeyOf[Cache](), func(c *container.Container) (any, error) {
//	    return cache.New(), nil
//	})
//
//	// Transient: new instance every Resolve
//	c.Bind(container.KeyOf[Request](), newRequest)
//
//	// Pre-built value
//	c.Instance(container.KeyOf[*config.Config](), cfg)
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Resolve(container.KeyOf[Store]())
//
//	// Generic, no type assertion required
//	store, err := container.Resolve[Store](c)
//
//	// Construct directly with configuration values
//	v, err := c.Activate(container.KeyOf[*FileStore](), []container.Parameter{{Name: "path", Value: "/tmp"}})
//
// # Assertions
//
// Hosts that depend on a capability check for it when a container is booted:
//
//	if err := c.AssertSingleton(container.KeyOf[Store]()); err != nil {
//	    return err // *container.ConfigurationError
//	}
package container
