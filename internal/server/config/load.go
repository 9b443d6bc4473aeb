package config

import (
	"fmt"

	"github.com/yndnr/staticserver-go/internal/infra/confloader"
)

// Load reads the defaults, then configFile (if any), then STATICSERVER_
// environment variables, then overrides (usually command-line flags), and
// validates the result.
func Load(configFile string, overrides map[string]any) (*LauncherConfig, error) {
	cfg := Default()
	loader := confloader.NewLoader(confloader.WithDecodeHooks(DecodeHooks()...))

	if err := loader.LoadFile(configFile); err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}
	if err := loader.LoadEnv(); err != nil {
		return nil, err
	}
	if err := expandShorthands(loader); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
	}

	// One pass so lists from a higher source replace, not overlay, lower ones.
	if err := loader.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// shorthandKeys maps keys that accept scalar shorthands to the hook that
// expands them.
var shorthandKeys = map[string]func(any) (any, error){
	"log":   func(v any) (any, error) { return logHook(nil, logSectionType, v) },
	"https": func(v any) (any, error) { return httpsHook(nil, httpsSectionType, v) },
}

// expandShorthands rewrites file and env values such as "log: /dir" or
// "https: false" into full mappings, so that a partial mapping from the
// flags merges into them instead of replacing them.
func expandShorthands(loader *confloader.Loader) error {
	for key, expand := range shorthandKeys {
		if !loader.Exists(key) {
			continue
		}
		v, err := expand(loader.Get(key))
		if err != nil {
			return fmt.Errorf("invalid %s setting: %w", key, err)
		}
		if err := loader.LoadMap(map[string]any{key: v}); err != nil {
			return err
		}
	}
	return nil
}
