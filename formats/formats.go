// Package formats wires every built-in convert format into a registry.
package formats

import (
	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/formats/html"
	"github.com/goliatone/go-convert/formats/idml"
	"github.com/goliatone/go-convert/formats/odf"
	"github.com/goliatone/go-convert/formats/rc"
	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
)

// Registry builds a registry with the four built-in drivers registered in
// autoload precedence order. provider may be nil; drivers then run with
// no-op loggers.
func Registry(provider interfaces.LoggerProvider) (*convert.Registry, error) {
	registry := convert.NewRegistry(
		convert.WithRegistryLogger(logging.ModuleLogger(provider, "convert.registry")),
	)

	drivers := []convert.Driver{
		html.New(html.WithLogger(logging.FormatLogger(provider, "html"))),
		odf.New(odf.WithLogger(logging.FormatLogger(provider, "odf"))),
		idml.New(idml.WithLogger(logging.FormatLogger(provider, "idml"))),
		rc.New(rc.WithLogger(logging.FormatLogger(provider, "rc"))),
	}
	for _, d := range drivers {
		if err := registry.Register(d); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
