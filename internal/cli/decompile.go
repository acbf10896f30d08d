package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/script"
	"github.com/roach88/platymap/internal/store"
)

// DecompileOptions holds flags for the decompile command.
type DecompileOptions struct {
	*RootOptions
	TextFormat string // json|yaml|cue; empty picks by extension
}

// NewDecompileCommand creates the decompile command.
func NewDecompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decompile <input> <output>",
		Short: "Decompile a binary map to a text script",
		Long: `Decompile a binary map into a structured-text script.

The output format is taken from --text-format, then the output file
extension, then the configured text_format (json by default). Use "-"
for either path to read standard input or write standard output.

Exit codes:
  0 - Decompiled
  1 - The map file is invalid
  2 - Command error (missing file, bad flags, etc.)`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompile(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TextFormat, "text-format", "", "output script format (json|yaml|cue)")

	return cmd
}

func runDecompile(opts *DecompileOptions, input, output string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	format := script.FormatForPath(output, script.Format(opts.cfg().TextFormat))
	if opts.TextFormat != "" {
		f, err := script.ParseFormat(opts.TextFormat)
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
	formatter.VerboseLog("Read %d byte(s) from %s", len(data), input)

	decoded, err := compiler.Decompile(table, data)
	if err != nil {
		return conversionError(formatter, input, err)
	}

	text, err := script.Marshal(decoded, format)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("writing %s script: %v", format, err), nil)
	}

	if err := writeOutput(cmd, output, text); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", output, err), nil)
	}

	opts.logger().Debug("decompiled", "input", input, "output", output, "records", len(decoded), "bytes", len(data))

	opts.recordConversion(cmd.Context(), store.DirectionDecompile, input, output, string(format), decoded, data)

	summary := ConversionSummary{
		Input:      input,
		Output:     output,
		TextFormat: string(format),
		Records:    len(decoded),
		Bytes:      len(data),
		BinaryHash: ir.BinaryHash(data),
	}
	return outputConversionSuccess(formatter, summary, "Decompiled")
}
