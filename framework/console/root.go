// Package console is the configy command line: it loads a configuration
// document the way an embedding application would and reports on the result.
package console

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/km-arc/configy/framework/app"
	"github.com/km-arc/configy/framework/config"
	"github.com/km-arc/configy/framework/container"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

// flags are the persistent flags shared by every command.
type flags struct {
	configFile string
	document   string
	base       string
	envFiles   []string
	verbose    bool
}

// NewRootCommand builds the configy command tree. providers are registered
// with every application the commands load, after the built-in ones.
func NewRootCommand(providers ...container.Provider) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Inheritable configuration definitions built into containers",
		Long: TitleStyle.Render("configy") + SubtitleStyle.Render(" - inheritable configuration containers") + `

configy reads a document of named configuration definitions, resolves their
extends inheritance, substitutes $(variables) and builds one dependency
container per non-abstract definition.

` + SubtitleStyle.Render("Examples:") + `
  configy validate -f configy.xml --base defaults.xml
  configy list
  configy show Web
  configy resolve Web --activate`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default is ./configy.yaml)")
	pf.StringVarP(&f.document, "file", "f", "", "definitions document (xml, yaml, hcl or toml)")
	pf.StringVar(&f.base, "base", "", "defaults document merged into definitions without extends")
	pf.StringSliceVar(&f.envFiles, "env", nil, "variable files in .env format")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	load := func(cmd *cobra.Command) (*app.Application, error) {
		return loadApplication(cmd, f, providers)
	}

	root.AddCommand(
		newValidateCommand(load),
		newListCommand(load),
		newShowCommand(load),
		newResolveCommand(load),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(providers ...container.Provider) {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(providers...),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

type loader func(cmd *cobra.Command) (*app.Application, error)

func loadApplication(cmd *cobra.Command, f *flags, providers []container.Provider) (*app.Application, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: f.configFile})
	if err != nil {
		return nil, err
	}
	if f.document != "" {
		cfg.Document = f.document
	}
	if f.base != "" {
		cfg.Base = f.base
	}
	cfg.VariableFiles = append(cfg.VariableFiles, f.envFiles...)

	logger, err := app.NewLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, err
	}
	if f.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		if err := a.Register(p); err != nil {
			return nil, err
		}
	}

	if err := a.Load(ctx); err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}
	return a, nil
}

// errUnknownDefinition is returned by commands given a name that was not loaded.
var errUnknownDefinition = errors.New("no such definition")
