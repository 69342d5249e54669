package convertcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	extractFileMessageType = "convert.extract_file"
	mergeFileMessageType   = "convert.merge_file"
)

// ExtractFileCommand loads a native file through its format driver and
// writes the intermediate unit store as JSON. Format may be empty, in which
// case the registry's autoload patterns pick the driver from the filename.
type ExtractFileCommand struct {
	// Path selects the native file to convert.
	Path string `json:"path"`
	// Format pins a format id instead of autoload detection.
	Format string `json:"format,omitempty"`
	// OutputPath receives the JSON unit dump.
	OutputPath string `json:"output_path"`
}

// Type implements command.Message.
func (ExtractFileCommand) Type() string { return extractFileMessageType }

// Validate ensures file paths are present before handlers execute.
func (cmd ExtractFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(nonBlank("convert.extract_file.path_required", "path is required"))),
		validation.Field(&cmd.OutputPath, validation.Required, validation.By(nonBlank("convert.extract_file.output_required", "output path is required"))),
	)
}

// MergeFileCommand merges an edited unit store against the template file and
// writes native output bytes atomically.
type MergeFileCommand struct {
	// UnitsPath selects the JSON unit dump produced by a prior extract.
	UnitsPath string `json:"units_path"`
	// TemplatePath selects the original native file supplying structure.
	TemplatePath string `json:"template_path"`
	// OutputPath receives the merged native file.
	OutputPath string `json:"output_path"`
	// Format pins a format id; empty falls back to the dump's recorded format.
	Format string `json:"format,omitempty"`
}

// Type implements command.Message.
func (MergeFileCommand) Type() string { return mergeFileMessageType }

// Validate ensures the merge inputs are present before handlers execute.
func (cmd MergeFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.UnitsPath, validation.Required, validation.By(nonBlank("convert.merge_file.units_required", "units path is required"))),
		validation.Field(&cmd.TemplatePath, validation.Required, validation.By(nonBlank("convert.merge_file.template_required", "template path is required"))),
		validation.Field(&cmd.OutputPath, validation.Required, validation.By(nonBlank("convert.merge_file.output_required", "output path is required"))),
	)
}

func nonBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
