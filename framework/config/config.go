// Package config loads the host configuration of configy: which documents to
// read, which variable files to apply and how to log.
//
// Settings come from defaults, then an optional configy.{yaml,toml,json} file,
// then CONFIGY_* environment variables. Variable files use the .env format.
package config

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "configy"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "configy"
	// EnvPrefix prefixes environment overrides, e.g. CONFIGY_LOG_LEVEL.
	EnvPrefix = "CONFIGY"
)

// Config is the typed host configuration.
type Config struct {
	// Document is the path of the definitions document.
	Document string `mapstructure:"document"`
	// Base is the path of the defaults document merged into every definition
	// without extends. Empty means no defaults.
	Base string `mapstructure:"base"`
	// VariableFiles are .env files whose entries become variables.
	VariableFiles []string `mapstructure:"variable_files"`
	// Variables are declared inline.
	Variables map[string]string `mapstructure:"variables"`
	Log       LogConfig         `mapstructure:"log"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Timestamps bool   `mapstructure:"timestamps"`
}

// LoadOptions selects where Load looks for a config file.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set; it must exist.
	ConfigFilePath string
	// SearchPaths are directories searched for configy.* when no file is
	// given. Defaults to the working directory.
	SearchPaths []string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Document:      "configy.xml",
		VariableFiles: []string{},
		Variables:     map[string]string{},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the config file and the environment.
// A missing config file is not an error unless it was named explicitly.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("document", defaults.Document)
	v.SetDefault("base", defaults.Base)
	v.SetDefault("variable_files", defaults.VariableFiles)
	v.SetDefault("variables", defaults.Variables)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.timestamps", defaults.Log.Timestamps)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadVariables reads .env variable files. A name defined in two files,
// compared ignoring case, is an error.
func LoadVariables(files ...string) (map[string]string, error) {
	vars := make(map[string]string)
	origin := make(map[string]string) // folded name → file

	for _, file := range files {
		entries, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read variable file %s: %w", file, err)
		}

		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			folded := strings.ToLower(name)
			if prev, ok := origin[folded]; ok {
				return nil, fmt.Errorf("variable %s is defined in both %s and %s", name, prev, file)
			}
			origin[folded] = file
			vars[name] = entries[name]
		}
	}
	return vars, nil
}
