package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/km-arc/configy/framework/builder"
	"github.com/km-arc/configy/framework/config"
	"github.com/km-arc/configy/framework/container"
	"github.com/km-arc/configy/framework/definition"
	"github.com/km-arc/configy/framework/document"
	"github.com/km-arc/configy/framework/providers"
	"github.com/km-arc/configy/framework/tree"
	"github.com/km-arc/configy/framework/variables"
)

// Application ties a type registry, its providers and the containers built
// from one configuration document together.
type Application struct {
	Config    *config.Config
	Types     *container.TypeRegistry
	Providers *container.ProviderRegistry
	Logger    *log.Logger

	definitions []*definition.Definition
	containers  []*container.Container
}

// New creates the application and registers the framework providers.
// A nil cfg means config.DefaultConfig; a nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	types := container.NewTypeRegistry()
	app := &Application{
		Config:    cfg,
		Types:     types,
		Providers: container.NewProviderRegistry(types),
		Logger:    logger,
	}

	for _, p := range []container.Provider{
		&providers.StandardProvider{},
		&providers.ConfigProvider{Config: cfg},
		&providers.LoggerProvider{Logger: logger},
	} {
		if err := app.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a Provider to the application. Register providers before
// Load so their types are known to the document.
func (a *Application) Register(provider container.Provider) error {
	return a.Providers.Register(provider)
}

// Load reads the configured document, defaults and variables, then builds and
// boots a container per non-abstract definition.
func (a *Application) Load(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("load canceled: %w", ctx.Err())
	default:
	}

	root, err := document.Load(a.Config.Document)
	if err != nil {
		return err
	}

	var base *tree.Node
	if a.Config.Base != "" {
		if base, err = document.Load(a.Config.Base); err != nil {
			return err
		}
	}

	vars, err := a.variables()
	if err != nil {
		return err
	}

	return a.LoadTrees(ctx, root, base, vars)
}

func (a *Application) variables() (*variables.Table, error) {
	vars := variables.New()
	if err := vars.AddVariables(a.Config.Variables); err != nil {
		return nil, err
	}

	fromFiles, err := config.LoadVariables(a.Config.VariableFiles...)
	if err != nil {
		return nil, err
	}
	if err := vars.AddVariables(fromFiles); err != nil {
		return nil, err
	}
	return vars, nil
}

// LoadTrees is Load for documents that are already parsed. vars may be nil.
//
// Loading is all or nothing: on error the application keeps no containers.
func (a *Application) LoadTrees(ctx context.Context, root, base *tree.Node, vars *variables.Table) error {
	a.definitions, a.containers = nil, nil

	select {
	case <-ctx.Done():
		return fmt.Errorf("load canceled: %w", ctx.Err())
	default:
	}

	defs, err := definition.NewParser(root, base, definition.WithLogger(a.Logger)).Parse()
	if err != nil {
		return err
	}

	var subst builder.Substitutor
	if vars != nil {
		subst = vars
	}
	containers, err := builder.New(a.Types, subst, builder.WithLogger(a.Logger)).Build(defs)
	if err != nil {
		return err
	}

	for _, c := range containers {
		if err := a.Providers.Boot(c); err != nil {
			return err
		}
	}

	a.definitions, a.containers = defs, containers
	a.Logger.Info("Loaded configuration", "definitions", len(defs), "containers", len(containers))
	return nil
}

// Container returns the container built from the named definition. Names
// compare ignoring case, as they do during validation.
func (a *Application) Container(name string) (*container.Container, bool) {
	for _, c := range a.containers {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// Containers returns the built containers in resolution order.
func (a *Application) Containers() []*container.Container { return a.containers }

// Definitions returns every merged definition, abstract ones included, in
// resolution order.
func (a *Application) Definitions() []*definition.Definition { return a.definitions }

// Definition returns the named merged definition.
func (a *Application) Definition(name string) (*definition.Definition, bool) {
	for _, d := range a.definitions {
		if strings.EqualFold(d.Name(), name) {
			return d, true
		}
	}
	return nil, false
}

// NewLogger creates the application logger described by cfg.
func NewLogger(w io.Writer, cfg config.LogConfig) (*log.Logger, error) {
	opts := log.Options{ReportTimestamp: cfg.Timestamps, Prefix: config.AppName}
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		opts.Level = level
	}
	return log.NewWithOptions(w, opts), nil
}
