package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/compiler"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
	"github.com/roach88/platymap/internal/script"
	"github.com/roach88/platymap/internal/store"
)

// stdio is the path that names standard input or output.
const stdio = "-"

// readInput reads a whole input file, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// writeOutput writes a whole output file, or standard output for "-".
// The file is only created once the conversion has succeeded.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == stdio {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// inputError reports a failed read as a command error.
func inputError(f *OutputFormatter, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("input file not found: %s", path), nil)
	}
	return f.Fail(ExitCommandError, ErrCodeReadFailed, fmt.Sprintf("reading %s: %v", path, err), nil)
}

// textFormat picks the script format for a text input: the flag, then the
// configured input format, then the file extension, then the configured
// text format.
func (opts *RootOptions) textFormat(flag, path string) (script.Format, error) {
	if flag != "" {
		return script.ParseFormat(flag)
	}
	cfg := opts.cfg()
	if cfg.InputFormat != "" {
		return script.Format(cfg.InputFormat), nil
	}
	return script.FormatForPath(path, script.Format(cfg.TextFormat)), nil
}

// ErrorDetails is the structured part of a conversion error.
type ErrorDetails struct {
	Kind   string `json:"kind"`
	Index  *int   `json:"index,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	Action string `json:"action,omitempty"`
	Field  string `json:"field,omitempty"`
	Opcode string `json:"opcode,omitempty"`
}

// conversionError reports a codec error. Codec errors exit with
// ExitFailure; anything else is a command error.
func conversionError(f *OutputFormatter, path string, err error) error {
	var irErr *ir.Error
	if !errors.As(err, &irErr) {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("%s: %v", path, err), nil)
	}

	details := ErrorDetails{
		Kind:   irErr.Kind.String(),
		Action: irErr.Action,
		Field:  irErr.Field,
	}
	if irErr.Index >= 0 {
		details.Index = &irErr.Index
	}
	if irErr.Offset >= 0 && irErr.Kind != ir.KindInvalidLength {
		details.Offset = &irErr.Offset
	}
	if irErr.Kind == ir.KindUnknownOpcode {
		details.Opcode = fmt.Sprintf("%08X", irErr.Opcode)
	}

	return f.Fail(ExitFailure, irErr.Code(), fmt.Sprintf("%s: %v", path, irErr), details)
}

// recordConversion appends a conversion to the history when a database is
// configured. Failures are logged and do not fail the command.
func (opts *RootOptions) recordConversion(ctx context.Context, dir store.Direction, input, output, format string, s ir.Script, data []byte) {
	st, err := opts.OpenStore()
	if err != nil {
		opts.logger().Warn("history unavailable", "db", opts.Config.DBPath, "error", err)
		return
	}
	if st == nil {
		return
	}
	defer st.Close()

	conv, err := store.NewConversion(dir, input, output, format, s, data)
	if err != nil {
		opts.logger().Warn("failed to record conversion", "error", err)
		return
	}

	recorded, err := st.RecordConversion(ctx, conv)
	if err != nil {
		opts.logger().Warn("failed to record conversion", "db", opts.Config.DBPath, "error", err)
		return
	}
	opts.logger().Debug("conversion recorded", "id", recorded.ID, "seq", recorded.Seq)
}

// parseAndResolve parses script text and resolves it against table.
func parseAndResolve(table *opcode.Table, data []byte, format script.Format) (ir.Script, error) {
	entries, err := script.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return compiler.Resolve(table, entries)
}
