package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/wdlabelbuilder/internal/builder"
	"github.com/roach88/wdlabelbuilder/internal/config"
	"github.com/roach88/wdlabelbuilder/internal/input"
)

func runGenerate(opts *GenerateOptions, language, filename string, cmd *cobra.Command) error {
	logger, _ := newLogger(cmd.ErrOrStderr(), opts.RootOptions)

	profile, err := config.Load(opts.Config, generateOverrides(cmd, opts, language))
	if err != nil {
		return exitErrorFor(err)
	}
	for _, w := range profile.Warnings() {
		logger.Warn(w)
	}
	cfg, err := profile.BuilderConfig()
	if err != nil {
		return exitErrorFor(err)
	}
	logger.Debug("profile resolved",
		"config", opts.Config,
		"language", profile.Language,
		"type", profile.Type,
		"format", profile.Format,
		"timeseries", profile.Timeseries,
	)

	records, err := input.Load(filename, profile.Fields())
	if err != nil {
		return exitErrorFor(err)
	}
	logger.Info("input loaded", "path", filename, "records", len(records))

	result, err := builder.Generate(records, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if err := writePayload(cmd, profile.Output, result.Payload); err != nil {
		return err
	}
	logger.Info("output written", "format", result.Format, "count", result.Count, "output", outputName(profile.Output))

	for _, notice := range result.Notices {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}
	return nil
}

// generateOverrides turns positional arguments and explicitly set flags into
// profile overrides. Flags left at their defaults do not mask the profile
// file or the environment.
func generateOverrides(cmd *cobra.Command, opts *GenerateOptions, language string) map[string]any {
	overrides := fieldOverrides(cmd, opts.RootOptions)
	overrides[config.KeyLanguage] = language

	switch {
	case opts.Label:
		overrides[config.KeyType] = "label"
	case opts.Description:
		overrides[config.KeyType] = "description"
	case opts.Alias:
		overrides[config.KeyType] = "alias"
	}
	switch {
	case opts.JSON:
		overrides[config.KeyFormat] = "json"
	case opts.URL:
		overrides[config.KeyFormat] = "url"
	}

	f := cmd.Flags()
	if f.Changed("timeseries") {
		overrides[config.KeyTimeseries] = opts.Timeseries
	}
	if f.Changed("prefix") {
		overrides[config.KeyPrefix] = opts.Prefix
	}
	if f.Changed("suffix") {
		overrides[config.KeySuffix] = opts.Suffix
	}
	if f.Changed("indent") {
		overrides[config.KeyIndent] = opts.Indent
	}
	if f.Changed("output") {
		overrides[config.KeyOutput] = opts.Output
	}
	return overrides
}

// writePayload writes payload to path, or to the command's stdout when path
// is empty.
func writePayload(cmd *cobra.Command, path string, payload []byte) error {
	if path == "" {
		if _, err := cmd.OutOrStdout().Write(payload); err != nil {
			return WrapExitError(ExitFailure, ErrCodeWriteFailed+": failed to write output", err)
		}
		return nil
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: failed to write %s", ErrCodeWriteFailed, path), err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
