package providers

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/km-arc/configy/framework/config"
	"github.com/km-arc/configy/framework/container"
)

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider makes the host configuration resolvable in every container
// that does not declare its own.
//
// Bound keys:
//   - *config.Config (singleton instance)
type ConfigProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigProvider) Boot(c *container.Container) error {
	key := container.KeyOf[*config.Config]()
	if p.Config != nil && !c.Registered(key) {
		c.Instance(key, p.Config)
	}
	return nil
}

// ── LoggerProvider ────────────────────────────────────────────────────────────

// LoggerProvider gives every container the host logger tagged with the
// container name, unless the configuration declares a logger of any lifetime.
//
// Bound keys:
//   - *log.Logger (singleton instance)
type LoggerProvider struct {
	container.BaseProvider
	Logger *log.Logger
}

func (p *LoggerProvider) Boot(c *container.Container) error {
	key := container.KeyOf[*log.Logger]()
	if p.Logger != nil && !c.Registered(key) {
		c.Instance(key, p.Logger.With("container", c.Name))
	}
	return nil
}

// ── AssertionProvider ─────────────────────────────────────────────────────────

// AssertionProvider fails booting a container that lacks a capability the
// host relies on.
//
//	app.Register(&providers.AssertionProvider{
//	    Singletons: []container.Key{container.KeyOf[Store]()},
//	})
type AssertionProvider struct {
	container.BaseProvider
	// Required keys may have any lifetime.
	Required   []container.Key
	Singletons []container.Key
	Transients []container.Key
}

func (p *AssertionProvider) Boot(c *container.Container) error {
	var errs []error
	for _, k := range p.Required {
		errs = append(errs, c.Assert(k))
	}
	for _, k := range p.Singletons {
		errs = append(errs, c.AssertSingleton(k))
	}
	for _, k := range p.Transients {
		errs = append(errs, c.AssertTransient(k))
	}
	return errors.Join(errs...)
}
