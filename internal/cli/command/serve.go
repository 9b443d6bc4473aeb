package command

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/staticserver-go/internal/cli/output"
	"github.com/yndnr/staticserver-go/internal/infra/buildinfo"
	"github.com/yndnr/staticserver-go/internal/infra/shutdown"
	"github.com/yndnr/staticserver-go/internal/server/config"
	"github.com/yndnr/staticserver-go/pkg/launcher"
)

// ServeCommand starts a server and blocks until SIGINT/SIGTERM.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve folders until interrupted",
		Flags:  serveFlags(),
		Action: serve,
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"STATICSERVER_CONFIG"},
		},
		&cli.StringSliceFlag{
			Name:    "folder",
			Aliases: []string{"f"},
			Usage:   "Folder to serve as PATH[:MOUNT] (repeatable)",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on",
			Value:   config.DefaultPort,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Host to bind (all interfaces when empty)",
		},
		&cli.StringFlag{
			Name:    "log",
			Aliases: []string{"l"},
			Usage:   "true, false, or a directory for " + launcher.LogFileName,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error, silent",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:  "tls-key",
			Usage: "PEM private key; enables HTTPS together with --tls-cert",
		},
		&cli.StringFlag{
			Name:  "tls-cert",
			Usage: "PEM certificate; enables HTTPS together with --tls-key",
		},
		&cli.BoolFlag{
			Name:  "tls-reload",
			Usage: "Reload the certificate when the files change",
		},
		&cli.StringSliceFlag{
			Name:  "use",
			Usage: "Mount a built-in middleware as NAME[@MOUNT][?KEY=VALUE&...] (repeatable)",
		},
		&cli.StringFlag{
			Name:  "metrics-path",
			Usage: "Expose Prometheus metrics at this path",
		},
		&cli.Float64Flag{
			Name:  "rate-limit",
			Usage: "Requests per second allowed per client IP (0 disables)",
		},
		&cli.IntFlag{
			Name:  "rate-burst",
			Usage: "Burst size for --rate-limit",
		},
		&cli.DurationFlag{
			Name:  "shutdown-timeout",
			Usage: "Grace period for in-flight requests on shutdown",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Do not print the ready banner",
		},
	}
}

func serve(c *cli.Context) error {
	overrides, err := flagOverrides(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return err
	}

	lc, err := config.ToLauncherConfig(cfg)
	if err != nil {
		return err
	}
	if len(lc.Folders) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "nothing to serve: pass --folder or set folders in the config file")
		return nil
	}

	h, err := launcher.Start(c.Context, lc)
	if err != nil {
		return err
	}

	if !c.Bool("quiet") {
		banner(cfg, h.URL()).Render(c.App.Writer)
	}

	sh := shutdown.NewHandler(cfg.ShutdownTimeout)
	sh.OnShutdown(h.Shutdown)
	sh.Watch(h.Err())
	return sh.Wait(c.Context)
}

// flagOverrides maps the flags the user set onto configuration keys.
func flagOverrides(c *cli.Context) (map[string]any, error) {
	m := make(map[string]any)

	if c.IsSet("folder") {
		var folders []any
		for _, s := range c.StringSlice("folder") {
			f := config.ParseFolder(s)
			folders = append(folders, map[string]any{"path": f.Path, "mount": f.Mount})
		}
		m["folders"] = folders
	}
	if c.IsSet("port") {
		m["port"] = c.Int("port")
	}
	if c.IsSet("host") {
		m["host"] = c.String("host")
	}

	log := map[string]any{}
	if c.IsSet("log") {
		s := config.ParseLogSetting(c.String("log"))
		log["enabled"] = s.Enabled
		log["dir"] = s.Dir
	}
	if c.IsSet("log-level") {
		log["level"] = c.String("log-level")
	}
	if c.IsSet("log-format") {
		log["format"] = c.String("log-format")
	}
	if len(log) > 0 {
		m["log"] = log
	}

	if c.IsSet("tls-key") || c.IsSet("tls-cert") {
		m["https"] = map[string]any{
			"enabled":   true,
			"key_path":  c.String("tls-key"),
			"cert_path": c.String("tls-cert"),
			"reload":    c.Bool("tls-reload"),
		}
	} else if c.IsSet("tls-reload") {
		m["https"] = map[string]any{"reload": c.Bool("tls-reload")}
	}

	if c.IsSet("use") {
		var mws []any
		for _, s := range c.StringSlice("use") {
			mw, err := ParseMiddlewareFlag(s)
			if err != nil {
				return nil, err
			}
			opts := make(map[string]any, len(mw.Options))
			for k, v := range mw.Options {
				opts[k] = v
			}
			mws = append(mws, map[string]any{"mount": mw.Mount, "name": mw.Name, "options": opts})
		}
		m["middleware"] = mws
	}

	if c.IsSet("metrics-path") {
		m["metrics"] = map[string]any{"path": c.String("metrics-path")}
	}

	rate := map[string]any{}
	if c.IsSet("rate-limit") {
		rate["rps"] = c.Float64("rate-limit")
	}
	if c.IsSet("rate-burst") {
		rate["burst"] = c.Int("rate-burst")
	}
	if len(rate) > 0 {
		m["rate_limit"] = rate
	}

	if c.IsSet("shutdown-timeout") {
		m["shutdown_timeout"] = c.Duration("shutdown-timeout")
	}

	return m, nil
}

// ParseMiddlewareFlag parses NAME[@MOUNT][?KEY=VALUE&...].
func ParseMiddlewareFlag(s string) (config.MiddlewareSection, error) {
	spec, query, _ := strings.Cut(s, "?")
	name, mount, _ := strings.Cut(spec, "@")
	if name == "" {
		return config.MiddlewareSection{}, fmt.Errorf("--use %q: middleware name is required", s)
	}
	if mount == "" {
		mount = config.DefaultMount
	}

	mw := config.MiddlewareSection{Name: name, Mount: mount}
	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return config.MiddlewareSection{}, fmt.Errorf("--use %q: %w", s, err)
		}
		mw.Options = make(map[string]string, len(values))
		for k := range values {
			mw.Options[k] = values.Get(k)
		}
	}
	return mw, nil
}

func banner(cfg *config.LauncherConfig, url string) output.Banner {
	b := output.Banner{
		Version: buildinfo.Get().Version,
		URL:     url,
		Metrics: cfg.Metrics.Path,
	}
	for _, f := range cfg.Folders {
		path, err := filepath.Abs(f.Path)
		if err != nil {
			path = f.Path
		}
		b.Mounts = append(b.Mounts, output.Mount{Path: path, Mount: f.Mount})
	}
	if cfg.Log.Enabled && cfg.Log.Dir != "" {
		b.LogFile = filepath.Join(cfg.Log.Dir, launcher.LogFileName)
	}
	return b
}
