package convert

import "errors"

var (
	// ErrNotSupported marks permanent capability limits of convert formats:
	// creating a file without a base, adding units, creating units. Callers
	// must not retry on it.
	ErrNotSupported = errors.New("convert: operation not supported")
	// ErrTemplateRequired is returned when a save is attempted without the
	// original native file; the unit store alone carries text only, never
	// enough to regenerate a valid file.
	ErrTemplateRequired = errors.New("convert: template file required")
	// ErrFormatUnavailable is returned by the registry when a format failed
	// its capability probe at registration time.
	ErrFormatUnavailable = errors.New("convert: format unavailable")
	// ErrUnknownFormat is returned when no registered format matches the
	// requested id or filename.
	ErrUnknownFormat = errors.New("convert: unknown format")
)
