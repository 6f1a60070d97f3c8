package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sortscope/internal/config"
	"github.com/roach88/sortscope/internal/harness"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Kind string // "scenario" | "config"
}

// FileValidation is the outcome for one file.
type FileValidation struct {
	Path    string   `json:"path"`
	Valid   bool     `json:"valid"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate scenario or config files",
		Long: `Validate YAML documents against the embedded schema without running
anything. Scenarios also get the checks the harness applies on load.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "scenario", "document kind (scenario|config)")

	return cmd
}

func runValidate(opts *ValidateOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	var check func(data []byte) error
	switch opts.Kind {
	case "scenario":
		check = func(data []byte) error {
			_, err := harness.ParseScenario(data)
			return err
		}
	case "config":
		check = func(data []byte) error {
			_, err := config.Parse(data)
			return err
		}
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid kind %q: must be scenario or config", opts.Kind))
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("Validating %s as %s", path, opts.Kind)
		data, err := os.ReadFile(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read file", err)
		}
		fv := validateDocument(path, data, check)
		result.Files = append(result.Files, fv)
		result.Valid = result.Valid && fv.Valid
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		writeValidationText(cmd, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func validateDocument(path string, data []byte, check func([]byte) error) FileValidation {
	err := check(data)
	if err == nil {
		return FileValidation{Path: path, Valid: true}
	}

	fv := FileValidation{Path: path, Code: ErrorCode(err)}
	var schemaErr *config.SchemaError
	if errors.As(err, &schemaErr) {
		fv.Details = schemaErr.Details
	} else {
		fv.Details = []string{err.Error()}
	}
	return fv
}

func writeValidationText(cmd *cobra.Command, result ValidationResult) {
	w := cmd.OutOrStdout()
	st := newTextStyles(w)
	for _, f := range result.Files {
		if f.Valid {
			fmt.Fprintf(w, "%s %s\n", st.ok.Render("✓"), f.Path)
			continue
		}
		fmt.Fprintf(w, "%s %s [%s]\n", st.bad.Render("✗"), f.Path, f.Code)
		for _, d := range f.Details {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
}
