package convertcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	convert "github.com/goliatone/go-convert"
	"github.com/goliatone/go-convert/internal/commands"
	"github.com/goliatone/go-convert/internal/logging"
	"github.com/goliatone/go-convert/pkg/interfaces"
	"github.com/goliatone/go-convert/store"
)

const (
	extractOperation = "convert.extract_file"
	mergeOperation   = "convert.merge_file"
)

var (
	_ command.Commander[ExtractFileCommand] = (*ExtractFileHandler)(nil)
	_ command.Commander[MergeFileCommand]   = (*MergeFileHandler)(nil)
)

// ExtractFileHandler runs native-to-units conversion via the shared command
// handler foundation.
type ExtractFileHandler struct {
	inner *commands.Handler[ExtractFileCommand]
}

// NewExtractFileHandler creates a handler bound to the supplied registry.
func NewExtractFileHandler(registry *convert.Registry, logger interfaces.Logger, opts ...commands.HandlerOption[ExtractFileCommand]) *ExtractFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExtractFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		driver, err := resolveDriver(registry, msg.Format, msg.Path)
		if err != nil {
			return err
		}

		file, err := convert.Load(driver, msg.Path)
		if err != nil {
			return err
		}

		jobID := uuid.New()
		if err := store.SaveAtomic(msg.OutputPath, func(w io.Writer) error {
			return store.WriteJSON(w, driver.Info().ID, file.Store())
		}); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"job_id": jobID,
			"format": driver.Info().ID,
			"path":   msg.Path,
			"units":  file.Store().Len(),
		}).Info("convert.command.extract_file.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExtractFileCommand]{
		commands.WithLogger[ExtractFileCommand](baseLogger),
		commands.WithOperation[ExtractFileCommand](extractOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExtractFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ExtractFileHandler) Execute(ctx context.Context, msg ExtractFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MergeFileHandler runs units-plus-template merging via the shared command
// handler foundation.
type MergeFileHandler struct {
	inner *commands.Handler[MergeFileCommand]
}

// NewMergeFileHandler creates a handler bound to the supplied registry.
func NewMergeFileHandler(registry *convert.Registry, logger interfaces.Logger, opts ...commands.HandlerOption[MergeFileCommand]) *MergeFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MergeFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		unitsFile, err := os.Open(msg.UnitsPath)
		if err != nil {
			return fmt.Errorf("convertcmd: open units %q: %w", msg.UnitsPath, err)
		}
		formatID, edited, err := store.ReadJSON(unitsFile)
		unitsFile.Close()
		if err != nil {
			return err
		}
		if msg.Format != "" {
			formatID = msg.Format
		}

		driver, err := registry.Get(formatID)
		if err != nil {
			return err
		}

		jobID := uuid.New()
		if err := store.SaveAtomic(msg.OutputPath, func(w io.Writer) error {
			return driver.Merge(edited, msg.TemplatePath, w)
		}); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"job_id":   jobID,
			"format":   formatID,
			"template": msg.TemplatePath,
			"output":   msg.OutputPath,
		}).Info("convert.command.merge_file.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[MergeFileCommand]{
		commands.WithLogger[MergeFileCommand](baseLogger),
		commands.WithOperation[MergeFileCommand](mergeOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MergeFileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *MergeFileHandler) Execute(ctx context.Context, msg MergeFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

func resolveDriver(registry *convert.Registry, formatID, path string) (convert.Driver, error) {
	if formatID != "" {
		return registry.Get(formatID)
	}
	driver, ok := registry.Detect(path)
	if !ok {
		return nil, fmt.Errorf("%w: no autoload match for %q", convert.ErrUnknownFormat, path)
	}
	return driver, nil
}
