package confloader

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "STATICSERVER_"

// envNestSeparator separates nested keys in environment variable names.
const envNestSeparator = "__"

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	hooks     []mapstructure.DecodeHookFunc
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithDecodeHooks appends mapstructure decode hooks used by Unmarshal.
// They run before the built-in duration and comma-slice hooks and so see
// the raw source values.
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) Option {
	return func(l *Loader) {
		l.hooks = append(l.hooks, hooks...)
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadFile loads configuration from a YAML file. An empty path is a no-op.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnv loads configuration from environment variables.
// STATICSERVER_HTTPS__CERT_PATH becomes https.cert_path.
func (l *Loader) LoadEnv() error {
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, envNestSeparator, ".")
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", envTransformer), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

// LoadMap merges a nested map over the loaded configuration (flags, tests).
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal decodes the loaded configuration into target using koanf tags
// and the configured decode hooks.
func (l *Loader) Unmarshal(target any) error {
	hooks := append(append([]mapstructure.DecodeHookFunc{}, l.hooks...),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	return l.k.UnmarshalWithConf("", target, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
			Result:           target,
			WeaklyTypedInput: true,
		},
	})
}

// Get returns the merged value at key; nested keys return a map.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// Exists reports whether key is set by any loaded source.
func (l *Loader) Exists(key string) bool {
	return l.k.Exists(key)
}
