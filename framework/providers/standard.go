package providers

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/km-arc/configy/framework/builder"
	"github.com/km-arc/configy/framework/container"
	"github.com/km-arc/configy/framework/tree"
)

// Type identifiers registered by StandardProvider.
const (
	SettingsType = "settings"
	LoggerType   = "logger"
)

// Settings is a read-only key/value section of configuration.
type Settings interface {
	Get(key string) (string, bool)
	Keys() []string
}

// NodeSettings reads its values from a declaration element: every attribute
// except type and singleInstance, then every <setting name="" value=""/>
// child. Later values replace earlier ones.
type NodeSettings struct {
	values map[string]string
}

// NewNodeSettings reads settings from decl.
func NewNodeSettings(decl *tree.Node) *NodeSettings {
	s := &NodeSettings{values: make(map[string]string)}
	if decl == nil {
		return s
	}
	for _, a := range decl.Attrs {
		if a.Name == builder.TypeAttr || a.Name == builder.SingleInstanceAttr {
			continue
		}
		s.values[a.Name] = a.Value
	}
	for _, el := range decl.Elements() {
		if el.Name != "setting" {
			continue
		}
		if name := el.AttrValue("name"); name != "" {
			value, ok := el.Attr("value")
			if !ok {
				value = strings.TrimSpace(el.InnerText())
			}
			s.values[name] = value
		}
	}
	return s
}

func (s *NodeSettings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the setting names, sorted.
func (s *NodeSettings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NewDeclaredLogger builds a logger from a declaration's level, prefix and
// timestamps attributes.
func NewDeclaredLogger(decl *tree.Node) (*log.Logger, error) {
	opts := log.Options{}
	if decl != nil {
		opts.Prefix = decl.AttrValue("prefix")
		opts.ReportTimestamp = strings.EqualFold(decl.AttrValue("timestamps"), "true")
		if lvl := decl.AttrValue("level"); lvl != "" {
			level, err := log.ParseLevel(lvl)
			if err != nil {
				return nil, fmt.Errorf("logger level %q: %w", lvl, err)
			}
			opts.Level = level
		}
	}
	return log.NewWithOptions(os.Stderr, opts), nil
}

// ── StandardProvider ──────────────────────────────────────────────────────────

// StandardProvider registers the built-in types every configy binary knows.
//
//	<settings type="settings" singleInstance="true" region="eu">
//	    <setting name="endpoint" value="https://example.com"/>
//	</settings>
//	<logger type="logger" singleInstance="true" level="debug" prefix="web"/>
type StandardProvider struct {
	container.BaseProvider
}

func (p *StandardProvider) Register(types *container.TypeRegistry) error {
	configNode := container.P[*tree.Node](builder.ConfigNodeParam)

	if err := types.Register(container.Describe[*NodeSettings](SettingsType).
		As(container.KeyOf[Settings]()).
		Constructor(func(a container.Args) (any, error) {
			return NewNodeSettings(container.Arg[*tree.Node](a, 0)), nil
		}, configNode).
		Descriptor()); err != nil {
		return err
	}

	return types.Register(container.Describe[*log.Logger](LoggerType).
		As(container.KeyOf[*log.Logger]()).
		Constructor(func(a container.Args) (any, error) {
			return NewDeclaredLogger(container.Arg[*tree.Node](a, 0))
		}, configNode).
		Descriptor())
}
