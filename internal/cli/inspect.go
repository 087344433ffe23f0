package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/wdlabelbuilder/internal/builder"
	"github.com/roach88/wdlabelbuilder/internal/config"
	"github.com/roach88/wdlabelbuilder/internal/input"
)

// InspectFormats defines the allowed inspect output formats.
var InspectFormats = []string{"text", "json"}

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Format string
}

// InspectResult is the JSON payload of the inspect command.
type InspectResult struct {
	Path    string          `json:"path"`
	Count   int             `json:"count"`
	Entries []builder.Entry `json:"entries"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <filename>",
		Short: "Show the point-in-time order of an input file",
		Long: `Load an input file, order its items and print the list from head to
tail: the identifier, its point-in-time key and the key of the next item.
Nothing is generated.

Example:
  wdlabelbuilder inspect query.json
  wdlabelbuilder inspect --format json -q qid -n name export.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, InspectFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	return cmd
}

func runInspect(opts *InspectOptions, filename string, cmd *cobra.Command) error {
	logger, id := newLogger(cmd.ErrOrStderr(), opts.RootOptions)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		RunID:     id,
	}

	fields, err := inspectFields(cmd, opts)
	if err != nil {
		return outputInspectError(formatter, err)
	}

	records, err := input.Load(filename, fields)
	if err != nil {
		return outputInspectError(formatter, err)
	}
	logger.Debug("input loaded", "path", filename, "records", len(records))

	entries := builder.Inspect(records)
	formatter.VerboseLog("Ordered %d item(s) from %s", len(entries), filename)

	if opts.Format == "json" {
		return formatter.Success(InspectResult{Path: filename, Count: len(entries), Entries: entries})
	}
	return writeEntries(formatter.Writer, entries)
}

// inspectFields resolves the input field names from flags, the environment
// and the profile file. Only the field settings of the profile matter here,
// so it is not validated as a whole.
func inspectFields(cmd *cobra.Command, opts *InspectOptions) (input.Fields, error) {
	profile, err := config.Read(opts.Config, fieldOverrides(cmd, opts.RootOptions))
	if err != nil {
		return input.Fields{}, err
	}
	return profile.Fields(), nil
}

// writeEntries prints one aligned row per node: id, key, "<" and the next
// key. The tail has no next key.
func writeEntries(w io.Writer, entries []builder.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		next := ""
		if e.Position < len(entries) {
			next = "< " + e.Next
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.Key, next)
	}
	return tw.Flush()
}

func outputInspectError(formatter *OutputFormatter, err error) error {
	exitErr := exitErrorFor(err)
	if formatter.Format == "json" {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
	}
	return exitErr
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(InspectFormats, format)
}
