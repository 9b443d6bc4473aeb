package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	urlColor   = color.New(color.FgGreen, color.Bold)
	labelColor = color.New(color.Faint)
)

// Mount is one folder line of the banner.
type Mount struct {
	Path  string
	Mount string
}

// Banner describes a running server for humans.
type Banner struct {
	Version string
	URL     string
	Mounts  []Mount
	LogFile string
	Metrics string
}

// Render writes the banner to w.
func (b Banner) Render(w io.Writer) {
	titleColor.Fprintf(w, "staticserver %s\n", b.Version)
	fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("url:    "), urlColor.Sprint(b.URL))
	for _, m := range b.Mounts {
		mount := m.Mount
		if mount == "" {
			mount = "/"
		}
		fmt.Fprintf(w, "  %s %s -> %s\n", labelColor.Sprint("mount:  "), mount, m.Path)
	}
	if b.LogFile != "" {
		fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("log:    "), b.LogFile)
	}
	if b.Metrics != "" {
		fmt.Fprintf(w, "  %s %s\n", labelColor.Sprint("metrics:"), b.URL+b.Metrics)
	}
	fmt.Fprintln(w, "Press Ctrl+C to stop.")
}

// Errorf prints a red "error:" line to w.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("error:"), fmt.Sprintf(format, args...))
}
