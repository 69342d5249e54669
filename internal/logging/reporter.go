package logging

import (
	"github.com/goliatone/go-convert/pkg/interfaces"
)

// Reporter adapts a Logger into the ErrorReporter contract consumed by base
// file validation. Reported errors are logged at warning level; they are
// expected conditions (an invalid base file), not subsystem failures.
type Reporter struct {
	logger interfaces.Logger
}

var _ interfaces.ErrorReporter = (*Reporter)(nil)

// NewReporter wraps the supplied logger. A nil logger degrades to NoOp.
func NewReporter(logger interfaces.Logger) *Reporter {
	if logger == nil {
		logger = NoOp()
	}
	return &Reporter{logger: logger}
}

// Report implements interfaces.ErrorReporter.
func (r *Reporter) Report(err error, fields map[string]any) {
	if err == nil {
		return
	}
	WithFields(r.logger, fields).Warn("convert.report_error", "error", err)
}

// DiscardReporter drops every reported error. Useful for callers that probe
// base files speculatively and do not care about the failure reason.
type DiscardReporter struct{}

var _ interfaces.ErrorReporter = DiscardReporter{}

// Report implements interfaces.ErrorReporter.
func (DiscardReporter) Report(error, map[string]any) {}
