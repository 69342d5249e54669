package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-convert/pkg/interfaces"
)

const rootModule = "convert"

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// FormatLogger returns the logger namespace reserved for a format driver.
func FormatLogger(provider interfaces.LoggerProvider, formatID string) interfaces.Logger {
	name := strings.TrimSpace(formatID)
	if name == "" {
		return ModuleLogger(provider, rootModule)
	}
	return ModuleLogger(provider, rootModule+".format."+name)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so drivers can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}
