package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yndnr/staticserver-go/internal/telemetry/logger"
)

// sink is the resolved logging destination of one server.
type sink struct {
	log    logger.Logger
	access io.Writer
	file   *os.File
}

func (s *sink) close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func openSink(cfg Logging) (*sink, error) {
	if !cfg.Enabled {
		return &sink{log: logger.Nop()}, nil
	}

	s := &sink{}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("launcher: create log dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(cfg.Dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("launcher: open log file: %w", err)
		}
		s.file = f
		out = f
	}

	level := cfg.Level
	if level == "" {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Format,
		Output: out,
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("launcher: create logger: %w", err)
	}

	s.log = log
	s.access = out
	return s, nil
}
