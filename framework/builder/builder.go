package builder

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/km-arc/configy/framework/container"
	"github.com/km-arc/configy/framework/definition"
	"github.com/km-arc/configy/framework/tree"
)

// Reserved declaration attributes and parameters.
const (
	TypeAttr           = "type"
	SingleInstanceAttr = "singleInstance"
	ConfigNodeParam    = "configNode"
)

// Substitutor rewrites variable tokens below a definition's root element.
type Substitutor interface {
	ReplaceVariables(node *tree.Node)
}

// Builder creates one container per non-abstract definition.
type Builder struct {
	types      *container.TypeRegistry
	variables  Substitutor
	logger     *log.Logger
	containers []container.Option
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger for build output. Built containers share it.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		b.logger = l
		b.containers = append(b.containers, container.WithLogger(l))
	}
}

// New creates a builder resolving type attributes through types. vars may be
// nil when no substitution is wanted.
func New(types *container.TypeRegistry, vars Substitutor, opts ...Option) *Builder {
	b := &Builder{
		types:     types,
		variables: vars,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns a container for every non-abstract definition, in order.
// The first failure aborts the whole build.
func (b *Builder) Build(defs []*definition.Definition) ([]*container.Container, error) {
	var out []*container.Container
	for _, def := range defs {
		if def.Abstract() {
			b.logger.Debug("Skipping abstract definition", "name", def.Name())
			continue
		}
		c, err := b.BuildOne(def)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// BuildOne substitutes variables in def and registers each of its
// dependency declarations in a new container.
func (b *Builder) BuildOne(def *definition.Definition) (*container.Container, error) {
	if b.variables != nil {
		b.variables.ReplaceVariables(def.Node)
	}

	c := container.New(def.Name(), def.Extends(), b.types, b.containers...)

	for _, decl := range def.Dependencies() {
		if err := b.RegisterDependency(decl, c); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("Built container", "name", c.Name, "extends", c.Extends, "registrations", len(c.Keys()))
	return c, nil
}

// RegisterExpected registers decl after checking that its type satisfies
// capability.
func (b *Builder) RegisterExpected(decl *tree.Node, c *container.Container, capability container.Key) error {
	desc, _, err := b.configType(decl, c)
	if err != nil {
		return err
	}
	if !desc.Type.Implements(capability) {
		return &container.ConfigurationError{
			Container: c.Name,
			Subject:   decl.Name,
			Reason:    fmt.Sprintf("invalid type for container node (expected %s implementation)", capability),
		}
	}
	return b.RegisterDependency(decl, c)
}

// RegisterDependency registers decl under every capability of its type.
func (b *Builder) RegisterDependency(decl *tree.Node, c *container.Container) error {
	desc, lifetime, err := b.configType(decl, c)
	if err != nil {
		return err
	}

	params := UnmappedParameters(decl)
	factory := func(c *container.Container) (any, error) {
		return c.ActivateDescriptor(desc, params)
	}

	for _, capability := range desc.Capabilities {
		if !c.Register(capability, factory, lifetime) {
			b.logger.Debug("Capability already registered, keeping the first", "container", c.Name, "capability", capability, "type", desc.ID)
		}
	}
	return nil
}

func (b *Builder) configType(decl *tree.Node, c *container.Container) (container.TypeDescriptor, container.Lifetime, error) {
	id := decl.AttrValue(TypeAttr)
	if id == "" {
		return container.TypeDescriptor{}, 0, &container.ConfigurationError{
			Container: c.Name,
			Subject:   decl.Name,
			Reason:    "missing type attribute for dependency; specify a registered type identifier",
		}
	}

	desc, ok := b.types.Lookup(id)
	if !ok {
		return container.TypeDescriptor{}, 0, &container.ConfigurationError{
			Container: c.Name,
			Subject:   decl.Name,
			Reason:    fmt.Sprintf("unable to resolve type %q", id),
		}
	}

	lifetime := container.Transient
	if strings.EqualFold(decl.AttrValue(SingleInstanceAttr), "true") {
		lifetime = container.Singleton
	}
	return desc, lifetime, nil
}

// UnmappedParameters converts every attribute except type and singleInstance
// into a constructor parameter, then appends configNode bound to decl.
func UnmappedParameters(decl *tree.Node) []container.Parameter {
	params := make([]container.Parameter, 0, len(decl.Attrs)+1)
	for _, attr := range decl.Attrs {
		if attr.Name == TypeAttr || attr.Name == SingleInstanceAttr {
			continue
		}
		params = append(params, container.Parameter{Name: attr.Name, Value: Coerce(attr.Value)})
	}
	return append(params, container.Parameter{Name: ConfigNodeParam, Value: decl})
}

// Coerce returns value as a bool when it reads true or false, as an int when
// it is a 32-bit decimal integer, and as the string itself otherwise.
func Coerce(value string) any {
	trimmed := strings.TrimSpace(value)
	switch {
	case strings.EqualFold(trimmed, "true"):
		return true
	case strings.EqualFold(trimmed, "false"):
		return false
	}
	if n, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
		return int(n)
	}
	return value
}
