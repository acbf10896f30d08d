package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/opcode"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	Shadowed bool
}

// TableResult is the JSON payload of the table command.
type TableResult struct {
	Operations []opcode.Operation `json:"operations,omitempty"`
	Shadowed   []opcode.Shadow    `json:"shadowed,omitempty"`
	Count      int                `json:"count"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the opcode table",
		Long: `List the operations of the active opcode table (the builtin table, or
the one given with --table) in declaration order.

With --shadowed, list only entries whose code or name is reused by a later
entry. Lookups resolve such keys to the later entry.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Shadowed, "shadowed", false, "list only shadowed entries")

	return cmd
}

func runTable(opts *TableOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	table, err := opts.Table()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTable, err.Error(), nil)
	}

	if opts.Shadowed {
		shadows := table.Shadowed()
		if formatter.Format == "json" {
			return formatter.Success(TableResult{Shadowed: shadows, Count: len(shadows)})
		}
		if len(shadows) == 0 {
			formatter.Done("No shadowed entries in %d operation(s)", table.Len())
			return nil
		}
		w := formatter.Writer
		for _, s := range shadows {
			fmt.Fprintf(w, "#%d %s: %s hidden by %s\n", s.Position, s.Key, s.Hidden, s.Winner)
		}
		return nil
	}

	ops := table.Operations()
	if formatter.Format == "json" {
		return formatter.Success(TableResult{Operations: ops, Count: len(ops)})
	}
	w := formatter.Writer
	for _, op := range ops {
		fmt.Fprintln(w, op)
	}
	return nil
}
