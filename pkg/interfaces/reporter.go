package interfaces

// ErrorReporter receives errors that are handled locally instead of being
// propagated, such as a failed trial load during base-file validation. The
// subsystem never retries on reported errors; the sink exists purely for
// observability.
type ErrorReporter interface {
	Report(err error, fields map[string]any)
}
