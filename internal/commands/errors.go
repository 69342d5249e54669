package commands

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so hosts can route
// conversion failures without string-matching messages.
const (
	convertValidationCode      = "CONVERT_COMMAND_VALIDATION_FAILED"
	convertContextCanceled     = "CONVERT_COMMAND_CANCELED"
	convertContextTimeout      = "CONVERT_COMMAND_TIMEOUT"
	convertContextErrorCode    = "CONVERT_COMMAND_CONTEXT_ERROR"
	convertExecutionFailedCode = "CONVERT_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "conversion command validation failed").
		WithTextCode(convertValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch err {
	case context.Canceled:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion command cancelled").
			WithTextCode(convertContextCanceled)
	case context.DeadlineExceeded:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion command deadline exceeded").
			WithTextCode(convertContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion command context error").
			WithTextCode(convertContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion command execution failed").
		WithTextCode(convertExecutionFailedCode)
}
