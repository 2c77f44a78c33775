package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var dotenvLoaded sync.Once

// Option configures a single Load call.
type Option func(*loader)

type loader struct {
	yamlFile string
	environ  map[string]string
	skipDot  bool
}

// WithYAMLFile reads defaults from the YAML file at path. Empty path is ignored.
func WithYAMLFile(path string) Option {
	return func(l *loader) { l.yamlFile = path }
}

// WithEnvironment replaces the process environment and skips .env loading.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) {
		l.environ = vars
		l.skipDot = true
	}
}

// Load parses configuration into v.
//
// Example:
//
//	type DatabaseConfig struct {
//		ConnURL string `env:"PG_CONN_URL,required"`
//	}
//
//	var cfg DatabaseConfig
//	if err := config.Load(&cfg, config.WithYAMLFile("config.yaml")); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	if !l.skipDot {
		dotenvLoaded.Do(func() {
			// Missing .env is fine.
			_ = godotenv.Load()
		})
	}

	vars := map[string]string{}
	if l.yamlFile != "" {
		fileVars, err := readYAML(l.yamlFile)
		if err != nil {
			return errors.Join(ErrReadingFile, err)
		}
		for k, val := range fileVars {
			vars[k] = val
		}
	}

	environ := l.environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	for k, val := range environ {
		vars[k] = val
	}

	if err := env.ParseWithOptions(v, env.Options{Environment: vars}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := map[string]string{}
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := strings.ToUpper(k)
		if prefix != "" {
			name = prefix + "_" + name
		}
		switch val := node[k].(type) {
		case map[string]any:
			flatten(name, val, out)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[name] = strings.Join(parts, ",")
		case nil:
		default:
			out[name] = fmt.Sprint(val)
		}
	}
}
