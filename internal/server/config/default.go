package config

import "time"

// Default configuration values.
const (
	DefaultPort            = 4567
	DefaultMount           = "/"
	DefaultLogLevel        = "debug"
	DefaultLogFormat       = "text"
	DefaultShutdownTimeout = 10 * time.Second
)

// Default returns the default configuration: nothing mounted, logging off.
func Default() *LauncherConfig {
	return &LauncherConfig{
		Port: DefaultPort,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}
