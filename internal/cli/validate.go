package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/script"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	InputFormat string
	Binary      bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Input   string `json:"input"`
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind"` // "script" or "map"
	Records int    `json:"records"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Check a script or map without writing output",
		Long: `Check that a text script resolves against the opcode table, or with
--binary that a map file decodes, without writing any output.

Exit codes:
  0 - Valid
  1 - Invalid (the error names the code and record index)
  2 - Command error (missing file, bad flags, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input script format (json|yaml|cue)")
	cmd.Flags().BoolVar(&opts.Binary, "binary", false, "validate a binary map file instead of a script")

	return cmd
}

func runValidate(opts *ValidateOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Binary && opts.InputFormat != "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, "--binary and --input-format are mutually exclusive", nil)
	}

	var format script.Format
	if !opts.Binary {
		f, err := opts.textFormat(opts.InputFormat, input)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
		}
		format = f
	}

	table, err := opts.Table()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTable, err.Error(), nil)
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return inputError(formatter, input, err)
	}

	result := ValidationResult{Input: input, Valid: true}
	var resolved ir.Script
	if opts.Binary {
		result.Kind = "map"
		resolved, err = compiler.Decompile(table, data)
	} else {
		result.Kind = "script"
		formatter.VerboseLog("Validating %s as %s", input, format)
		resolved, err = parseAndResolve(table, data, format)
	}
	if err != nil {
		return conversionError(formatter, input, err)
	}
	result.Records = len(resolved)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	formatter.Done("%s is a valid %s (%d record(s))", input, result.Kind, result.Records)
	return nil
}
