package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

var (
	logSectionType   = reflect.TypeOf(LogSection{})
	httpsSectionType = reflect.TypeOf(HTTPSSection{})
	foldersType      = reflect.TypeOf([]FolderSection{})
)

// DecodeHooks returns the hooks that expand the shorthand forms of the
// log, https and folders keys.
func DecodeHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		logHook,
		httpsHook,
		foldersHook,
	}
}

// logHook accepts a bool, a "true"/"false"/directory string, or a mapping.
// A mapping without an enabled key turns logging on.
func logHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != logSectionType {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return map[string]any{"enabled": v}, nil
	case string:
		s := ParseLogSetting(v)
		return map[string]any{"enabled": s.Enabled, "dir": s.Dir}, nil
	case map[string]any:
		return enableByDefault(v), nil
	}
	return data, nil
}

// httpsHook accepts a bool or a mapping. A mapping without an enabled key
// turns TLS on.
func httpsHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != httpsSectionType {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		return map[string]any{"enabled": v}, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		return map[string]any{"enabled": b}, nil
	case map[string]any:
		return enableByDefault(v), nil
	}
	return data, nil
}

// foldersHook lifts a single folder mapping into a one-element list and
// expands "path[:mount]" strings.
func foldersHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != foldersType {
		return data, nil
	}
	switch v := data.(type) {
	case map[string]any:
		return []any{v}, nil
	case string:
		var out []any
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			f := ParseFolder(part)
			out = append(out, map[string]any{"path": f.Path, "mount": f.Mount})
		}
		return out, nil
	}
	return data, nil
}

func enableByDefault(m map[string]any) map[string]any {
	if _, ok := m["enabled"]; ok {
		return m
	}
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["enabled"] = true
	return out
}

// ParseLogSetting interprets a --log value: a boolean switches logging,
// anything else is the log directory.
func ParseLogSetting(s string) LogSection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "off", "no":
		return LogSection{}
	case "true", "1", "on", "yes":
		return LogSection{Enabled: true}
	}
	return LogSection{Enabled: true, Dir: s}
}

// ParseFolder splits "path[:mount]". The mount defaults to "/".
func ParseFolder(s string) FolderSection {
	if i := strings.LastIndex(s, ":"); i > 0 && strings.HasPrefix(s[i+1:], "/") {
		return FolderSection{Path: s[:i], Mount: s[i+1:]}
	}
	return FolderSection{Path: s, Mount: DefaultMount}
}
