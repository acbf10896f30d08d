package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	InputFormat string // json|yaml|cue; empty picks by extension
}

// ConversionSummary describes a successful compile or decompile.
type ConversionSummary struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	TextFormat string `json:"text_format"`
	Records    int    `json:"records"`
	Bytes      int    `json:"bytes"`
	BinaryHash string `json:"binary_hash"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <input> <output>",
		Short: "Compile a text script to a binary map",
		Long: `Compile a structured-text script into the binary map format.

The input format is taken from --input-format, then the configured
input_format, then the file extension (.json, .yaml, .yml, .cue), and
falls back to the configured text_format. Use "-" for either path to
read standard input or write standard output.

The output file is only written when the whole script compiles.

Exit codes:
  0 - Compiled
  1 - The script is invalid
  2 - Command error (missing file, bad flags, etc.)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input script format (json|yaml|cue)")

	return cmd
}

func runCompile(opts *CompileOptions, input, output string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	format, err := opts.textFormat(opts.InputFormat, input)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error(), nil)
	}

	table, err := opts.Table()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTable, err.Error(), nil)
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return inputError(formatter, input, err)
	}
	formatter.VerboseLog("Read %d byte(s) of %s from %s", len(data), format, input)

	resolved, err := parseAndResolve(table, data, format)
	if err != nil {
		return conversionError(formatter, input, err)
	}
	out, err := compiler.Encode(table, resolved)
	if err != nil {
		return conversionError(formatter, input, err)
	}

	if err := writeOutput(cmd, output, out); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", output, err), nil)
	}

	opts.logger().Debug("compiled", "input", input, "output", output, "records", len(resolved), "bytes", len(out))

	opts.recordConversion(cmd.Context(), store.DirectionCompile, input, output, string(format), resolved, out)

	summary := ConversionSummary{
		Input:      input,
		Output:     output,
		TextFormat: string(format),
		Records:    len(resolved),
		Bytes:      len(out),
		BinaryHash: ir.BinaryHash(out),
	}
	return outputConversionSuccess(formatter, summary, "Compiled")
}

// outputConversionSuccess reports a finished conversion. Nothing is printed
// when the output went to standard output.
func outputConversionSuccess(formatter *OutputFormatter, summary ConversionSummary, verb string) error {
	if summary.Output == stdio {
		return nil
	}
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	formatter.Done("%s %d record(s) from %s to %s (%d bytes)",
		verb, summary.Records, summary.Input, summary.Output, summary.Bytes)
	return nil
}
