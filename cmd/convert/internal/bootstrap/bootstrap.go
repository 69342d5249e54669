// Package bootstrap wires the logger provider and format registry for the
// convert command line tools.
package bootstrap

import (
	"fmt"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/formats"
	"github.com/goliatone/go-convert/internal/logging/gologger"
	"github.com/goliatone/go-convert/pkg/interfaces"
)

// Options carries the CLI-level configuration shared by every tool.
type Options struct {
	LogLevel  string
	LogFormat string
}

// Module bundles the wired components handed to a tool's run function.
type Module struct {
	Registry *convert.Registry
	Provider interfaces.LoggerProvider
}

// Build constructs the logger provider and the registry with every built-in
// format registered.
func Build(opts Options) (*Module, error) {
	format := opts.LogFormat
	if format == "" {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:  opts.LogLevel,
		Format: format,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap logger: %w", err)
	}

	registry, err := formats.Registry(provider)
	if err != nil {
		return nil, fmt.Errorf("bootstrap registry: %w", err)
	}

	return &Module{Registry: registry, Provider: provider}, nil
}
