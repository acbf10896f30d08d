package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit      int
	BinaryHash string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Long: `List conversions recorded in the history database (--db, the db
setting in platymap.toml, or PLATYMAP_DB), oldest first.

Examples:
  platymap history --db maps.db
  platymap history --db maps.db --limit 5
  platymap history --db maps.db --binary-hash <hash>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show the newest N conversions (0 for all)")
	cmd.Flags().StringVar(&opts.BinaryHash, "binary-hash", "", "only conversions of the binary with this hash")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := opts.OpenStore()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, fmt.Sprintf("opening history: %v", err), nil)
	}
	if st == nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, "no history database configured (use --db or PLATYMAP_DB)", nil)
	}
	defer st.Close()

	var convs []store.Conversion
	if opts.BinaryHash != "" {
		convs, err = st.FindByBinaryHash(cmd.Context(), opts.BinaryHash)
	} else {
		convs, err = st.ListConversions(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeHistory, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(convs)
	}

	if len(convs) == 0 {
		fmt.Fprintln(formatter.Writer, "No conversions recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tDIRECTION\tINPUT\tOUTPUT\tFORMAT\tRECORDS\tBYTES")
	for _, c := range convs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			c.Seq, c.Direction, c.InputPath, c.OutputPath, c.TextFormat, c.Records, c.Bytes)
	}
	return tw.Flush()
}
