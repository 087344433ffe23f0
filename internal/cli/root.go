package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wdlabelbuilder/internal/config"
	"github.com/roach88/wdlabelbuilder/internal/input"
	"github.com/roach88/wdlabelbuilder/internal/runid"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Config     string
	IDField    string
	LabelField string

	// RunIDs overrides the run identifier generator (for testing).
	// If nil, defaults to runid.UUIDv7Generator.
	RunIDs runid.Generator
}

// GenerateOptions holds flags for the root generate command.
type GenerateOptions struct {
	*RootOptions

	Label       bool
	Description bool
	Alias       bool
	Timeseries  bool
	Prefix      string
	Suffix      string
	JSON        bool
	URL         bool
	Indent      int
	Output      string
}

// NewRootCommand creates the wdlabelbuilder command. Run without a
// subcommand it generates terms; "inspect" shows the ordering.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions is NewRootCommand with caller-owned options,
// for tests that fix the run identifier.
func NewRootCommandWithOptions(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}
	defaults := input.DefaultFields()

	cmd := &cobra.Command{
		Use:   "wdlabelbuilder <language> <filename>",
		Short: "Create Wikidata labels, descriptions and aliases from existing labels",
		Long: `Create labels, descriptions and aliases for Wikidata items based on
existing labels for those items.

The input is a query service export (JSON or YAML array of objects). Items
are ordered by the point in time found in their labels, such as the year in
"Finnish parliamentary election, 1907", and one term per item is written as
QuickStatements commands, a JSON array or a QuickStatements URL.

Settings may also come from a profile file (--config) or WDLB_* environment
variables; flags win over both.

Example:
  wdlabelbuilder fi query.json -l -t -p eduskuntavaalit
  wdlabelbuilder en query.json -d -s "Finnish election" -j -o out.json
  wdlabelbuilder sv query.json -a -t -u`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires <language> and <filename>, received %d argument(s)", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], args[1], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&rootOpts.Config, "config", "", "profile file (YAML, JSON or TOML)")
	cmd.PersistentFlags().StringVarP(&rootOpts.IDField, "qtitle", "q", defaults.ID,
		"title of the identifier field in the input file")
	cmd.PersistentFlags().StringVarP(&rootOpts.LabelField, "ltitle", "n", defaults.Label,
		"title of the label field in the input file")

	f := cmd.Flags()
	f.BoolVarP(&opts.Label, "label", "l", false, "generate labels")
	f.BoolVarP(&opts.Alias, "alias", "a", false, "generate aliases")
	f.BoolVarP(&opts.Description, "description", "d", false, "generate descriptions")
	f.BoolVarP(&opts.Timeseries, "timeseries", "t", false,
		"use numbers, such as years, from the input labels in the new terms")
	f.StringVarP(&opts.Prefix, "prefix", "p", "", "prefix of the new terms")
	f.StringVarP(&opts.Suffix, "suffix", "s", "", "suffix of the new terms")
	f.BoolVarP(&opts.JSON, "json", "j", false, "export a JSON array instead of QuickStatements commands")
	f.BoolVarP(&opts.URL, "url", "u", false, "export a QuickStatements URL")
	f.IntVar(&opts.Indent, "indent", 0, "indent JSON output by this many spaces")
	f.StringVarP(&opts.Output, "output", "o", "", "write the result to this file instead of stdout")

	cmd.MarkFlagsMutuallyExclusive("label", "alias", "description")
	cmd.MarkFlagsMutuallyExclusive("json", "url")

	cmd.AddCommand(NewInspectCommand(rootOpts))

	return cmd
}

// Execute runs cmd, reports any error on its stderr and returns the process
// exit code. Errors that do not carry an exit code come from argument
// parsing and exit with ExitCommandError.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		err = WrapExitError(ExitCommandError, "usage error", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return GetExitCode(err)
}

// newLogger configures slog for one command run: text to w, Debug when
// verbose, tagged with the run identifier.
func newLogger(w io.Writer, opts *RootOptions) (*slog.Logger, string) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})

	gen := opts.RunIDs
	if gen == nil {
		gen = runid.UUIDv7Generator{}
	}
	id := gen.Generate()
	return slog.New(handler).With("run_id", id), id
}

// fieldOverrides returns the input field flags the user set explicitly.
func fieldOverrides(cmd *cobra.Command, opts *RootOptions) map[string]any {
	overrides := map[string]any{}
	if cmd.Flags().Changed("qtitle") {
		overrides[config.KeyIDField] = opts.IDField
	}
	if cmd.Flags().Changed("ltitle") {
		overrides[config.KeyLabelField] = opts.LabelField
	}
	return overrides
}
