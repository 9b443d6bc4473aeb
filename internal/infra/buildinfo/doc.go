// Package buildinfo reports the version of the staticserver binary.
//
// Values can be injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/staticserver-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Anything left unset falls back to the module and VCS data the Go
// toolchain embeds in the binary.
package buildinfo
