package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/platymap/internal/config"
	"github.com/roach88/platymap/internal/ir"
	"github.com/roach88/platymap/internal/opcode"
	"github.com/roach88/platymap/internal/store"
)

// RootOptions holds global flags and the state resolved from them.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
	TablePath  string
	NoColor    bool

	// Resolved in PersistentPreRunE.
	Config *config.Config
	Logger *slog.Logger

	table *opcode.Table
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Mode names are case-insensitive: COMPILE and Decompile work too.
func init() {
	cobra.EnableCaseInsensitive = true
}

// NewRootCommand creates the root command for the platymap CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "platymap",
		Short: "Platypus map converter",
		Long: `Convert Platypus map files between the game's binary opcode format
and editable structured text.

  platymap compile   [INPUT] [OUTPUT]   text to binary
  platymap decompile [INPUT] [OUTPUT]   binary to text

OUTPUT may be "-" to write to standard output.`,
		Version:       ir.ToolVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: platymap.toml in the current or a parent directory)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "record conversions in this SQLite database")
	cmd.PersistentFlags().StringVar(&opts.TablePath, "table", "", "CUE opcode table to use instead of the builtin one")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewDecompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup validates global flags, then resolves configuration and logging.
// Flags set on the command line override the configuration.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, opts.Format) {
		formatter := &OutputFormatter{Format: "text", Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr()}
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
			fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	wd, err := os.Getwd()
	if err != nil {
		return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeConfig, fmt.Sprintf("working directory: %v", err), nil)
	}
	cfg, err := config.Load(wd, opts.ConfigPath)
	if err != nil {
		return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = opts.DBPath
	}
	if flags.Changed("table") {
		cfg.TablePath = opts.TablePath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	opts.Verbose = cfg.Verbose
	opts.Config = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	if cfg.File != "" {
		opts.Logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// formatter builds the output formatter for a command.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// Table returns the opcode table: the CUE table when one is configured,
// else the builtin table. It is loaded once per command.
func (opts *RootOptions) Table() (*opcode.Table, error) {
	if opts.table != nil {
		return opts.table, nil
	}
	path := opts.cfg().TablePath
	if path == "" {
		opts.table = opcode.Platypus()
		return opts.table, nil
	}

	table, err := opcode.LoadCUE(path)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("opcode table loaded", "path", path, "operations", table.Len())
	opts.table = table
	return table, nil
}

// OpenStore opens the history database, or returns nil when none is
// configured.
func (opts *RootOptions) OpenStore() (*store.Store, error) {
	if opts.cfg().DBPath == "" {
		return nil, nil
	}
	return store.Open(opts.Config.DBPath)
}

// cfg returns the resolved configuration, or the defaults when the command
// runs without the root command's setup.
func (opts *RootOptions) cfg() *config.Config {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	return opts.Config
}

func (opts *RootOptions) logger() *slog.Logger {
	if opts.Logger == nil {
		return slog.Default()
	}
	return opts.Logger
}
