package definition

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/km-arc/configy/framework/inherit"
	"github.com/km-arc/configy/framework/tree"
)

const (
	// ElementName is the tag of definition elements under the root.
	ElementName = "configuration"

	// MaxInheritanceIterations caps the queue pops of the ordering pass.
	MaxInheritanceIterations = 5000
)

// Parser turns a definitions root into ordered, fully merged definitions.
type Parser struct {
	root   *tree.Node
	base   *tree.Node
	engine inherit.Engine
	logger *log.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for resolution-order debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithEngine replaces the inheritance engine.
func WithEngine(e inherit.Engine) Option {
	return func(p *Parser) { p.engine = e }
}

// NewParser creates a parser over the root element holding the definitions.
// base is merged into every definition without an extends attribute; nil
// means an empty base.
//
//	p := definition.NewParser(root, defaults)
//	defs, err := p.Parse()
func NewParser(root, base *tree.Node, opts ...Option) *Parser {
	if base == nil {
		base = tree.NewElement("defaults")
	}
	p := &Parser{
		root:   root,
		base:   base,
		engine: inherit.Merger{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse discovers, validates, orders and merges the definitions.
//
// Names must be non-blank and unique ignoring case; both checks run before
// any ordering. The result lists parents before the definitions extending
// them, and every definition holds its merged tree.
func (p *Parser) Parse() ([]*Definition, error) {
	defs := p.discover()

	if err := validate(defs); err != nil {
		return nil, err
	}

	ordered, err := p.Order(defs)
	if err != nil {
		return nil, err
	}

	processed := make(map[string]*Definition, len(ordered))
	for _, def := range ordered {
		own := def.Node
		if extends := def.Extends(); strings.TrimSpace(extends) == "" {
			def.Node = p.engine.Merge(p.base, own)
		} else {
			def.Node = p.engine.Merge(processed[extends].Node, own)
		}
		keepIdentity(def.Node, own)
		processed[def.Name()] = def

		p.logger.Debug("Merged container definition", "name", def.Name(), "extends", def.Extends(), "abstract", def.Abstract())
	}

	return ordered, nil
}

func (p *Parser) discover() []*Definition {
	var defs []*Definition
	for _, el := range p.root.Elements() {
		if el.Name == ElementName {
			defs = append(defs, New(el))
		}
	}
	return defs
}

func validate(defs []*Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		name := def.Name()
		if strings.TrimSpace(name) == "" {
			return &DefinitionError{Reason: "at least one container had no name assigned; each container must have a unique name"}
		}

		key := strings.ToLower(name)
		if seen[key] {
			return &DefinitionError{Name: name, Reason: "the container is defined twice; containers should have unique names"}
		}
		seen[key] = true
	}
	return nil
}

// Order sorts definitions so that every parent precedes its children.
//
// Definitions are taken from a FIFO queue; one whose parent has not been
// placed yet goes back to the end. Independent definitions keep their
// document order. After MaxInheritanceIterations pops every definition still
// queued is reported in an *InheritanceLoopError.
func (p *Parser) Order(defs []*Definition) ([]*Definition, error) {
	queue := make([]*Definition, len(defs))
	copy(queue, defs)

	added := make(map[string]bool, len(defs))
	result := make([]*Definition, 0, len(defs))

	for iterations := 0; len(queue) > 0 && iterations < MaxInheritanceIterations; iterations++ {
		current := queue[0]
		queue = queue[1:]

		if extends := current.Extends(); strings.TrimSpace(extends) != "" && !added[extends] {
			queue = append(queue, current)
			continue
		}

		result = append(result, current)
		added[current.Name()] = true
	}

	if len(queue) > 0 {
		unresolved := make([]string, len(queue))
		for i, def := range queue {
			unresolved[i] = def.Name()
		}
		return nil, &InheritanceLoopError{Unresolved: unresolved}
	}

	names := make([]string, len(result))
	for i, def := range result {
		names[i] = def.Name()
	}
	p.logger.Debug("Resolved container inheritance order", "order", names)

	return result, nil
}

// keepIdentity gives the merged root the element name and attributes of the
// definition itself, so name, extends and abstract are never inherited.
func keepIdentity(merged, own *tree.Node) {
	merged.Name = own.Name
	merged.Attrs = append([]tree.Attr(nil), own.Attrs...)
}
