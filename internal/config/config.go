// Package config resolves the run profile from command-line values, WDLB_*
// environment variables and an optional profile file, and validates the
// result against an embedded CUE schema.
//
// Precedence, highest first: explicit values passed to Load, environment,
// profile file, defaults.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/roach88/wdlabelbuilder/internal/builder"
	"github.com/roach88/wdlabelbuilder/internal/input"
	"github.com/roach88/wdlabelbuilder/internal/render"
)

//go:embed schema.cue
var schemaCUE string

// EnvPrefix prefixes environment overrides, e.g. WDLB_PREFIX.
const EnvPrefix = "WDLB"

// Error codes for profile problems.
const (
	ErrCodeInvalidProfile = "E101" // Profile fails validation
	ErrCodeProfileRead    = "E102" // Profile file unreadable
)

// Profile is the merged configuration of one run.
type Profile struct {
	Language   string `json:"language" mapstructure:"language"`
	Type       string `json:"type" mapstructure:"type"`
	Format     string `json:"format" mapstructure:"format"`
	Prefix     string `json:"prefix" mapstructure:"prefix"`
	Suffix     string `json:"suffix" mapstructure:"suffix"`
	Timeseries bool   `json:"timeseries" mapstructure:"timeseries"`
	IDField    string `json:"qtitle" mapstructure:"qtitle"`
	LabelField string `json:"ltitle" mapstructure:"ltitle"`
	Indent     int    `json:"indent" mapstructure:"indent"`
	Output     string `json:"output" mapstructure:"output"`
}

// Keys accepted in profiles and as overrides.
const (
	KeyLanguage   = "language"
	KeyType       = "type"
	KeyFormat     = "format"
	KeyPrefix     = "prefix"
	KeySuffix     = "suffix"
	KeyTimeseries = "timeseries"
	KeyIDField    = "qtitle"
	KeyLabelField = "ltitle"
	KeyIndent     = "indent"
	KeyOutput     = "output"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("config error in field '%s': %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultProfile returns the defaults used when nothing else is set.
// Type is deliberately empty: the caller must choose one.
func DefaultProfile() *Profile {
	fields := input.DefaultFields()
	return &Profile{
		Format:     string(render.FormatTabular),
		IDField:    fields.ID,
		LabelField: fields.Label,
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	def := DefaultProfile()
	v.SetDefault(KeyLanguage, def.Language)
	v.SetDefault(KeyType, def.Type)
	v.SetDefault(KeyFormat, def.Format)
	v.SetDefault(KeyPrefix, def.Prefix)
	v.SetDefault(KeySuffix, def.Suffix)
	v.SetDefault(KeyTimeseries, def.Timeseries)
	v.SetDefault(KeyIDField, def.IDField)
	v.SetDefault(KeyLabelField, def.LabelField)
	v.SetDefault(KeyIndent, def.Indent)
	v.SetDefault(KeyOutput, def.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load merges the profile file at path (optional, any format viper reads:
// YAML, JSON, TOML) with the environment and overrides, then validates it.
func Load(path string, overrides map[string]any) (*Profile, error) {
	p, err := Read(path, overrides)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Read merges like Load but does not validate the result.
func Read(path string, overrides map[string]any) (*Profile, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigError{
				Code:    ErrCodeProfileRead,
				Message: fmt.Sprintf("failed to read profile %s", path),
				Err:     err,
			}
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, &ConfigError{Code: ErrCodeInvalidProfile, Message: "failed to decode profile", Err: err}
	}
	return &p, nil
}

// Validate checks the profile against the embedded schema.
func (p *Profile) Validate() error {
	if p.Type == "" {
		return &ConfigError{
			Code:    ErrCodeInvalidProfile,
			Field:   KeyType,
			Message: "missing required value: label, alias or description",
		}
	}
	if p.Language == "" {
		return &ConfigError{Code: ErrCodeInvalidProfile, Field: KeyLanguage, Message: "missing required value: language"}
	}
	return p.validateSchema()
}

func (p *Profile) validateSchema() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Profile"))
	val := def.Unify(ctx.Encode(p))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return &ConfigError{
			Code:    ErrCodeInvalidProfile,
			Field:   schemaField(err),
			Message: strings.TrimSpace(cueerrors.Details(err, nil)),
		}
	}
	return nil
}

// schemaField picks the profile field named by the first CUE error.
func schemaField(err error) string {
	for _, e := range cueerrors.Errors(err) {
		path := e.Path()
		if len(path) > 0 {
			return path[len(path)-1]
		}
	}
	return ""
}

// Warnings lists problems that do not stop the run.
func (p *Profile) Warnings() []string {
	var warnings []string
	if _, err := language.Parse(p.Language); err != nil {
		warnings = append(warnings, fmt.Sprintf("language %q is not a BCP 47 tag; using it verbatim", p.Language))
	}
	if p.Indent > 0 && p.Format != string(render.FormatJSON) {
		warnings = append(warnings, fmt.Sprintf("indent only applies to json output, ignored for %s", p.Format))
	}
	return warnings
}

// Fields returns the input field names.
func (p *Profile) Fields() input.Fields {
	return input.Fields{ID: p.IDField, Label: p.LabelField}
}

// BuilderConfig converts a validated profile for builder.Generate.
func (p *Profile) BuilderConfig() (builder.Config, error) {
	typ, err := render.ParseOutputType(p.Type)
	if err != nil {
		return builder.Config{}, &ConfigError{Code: ErrCodeInvalidProfile, Field: KeyType, Message: err.Error()}
	}
	format, err := render.ParseFormat(p.Format)
	if err != nil {
		return builder.Config{}, &ConfigError{Code: ErrCodeInvalidProfile, Field: KeyFormat, Message: err.Error()}
	}

	return builder.Config{
		Language:   p.Language,
		Type:       typ,
		Format:     format,
		Prefix:     p.Prefix,
		Suffix:     p.Suffix,
		Timeseries: p.Timeseries,
		IDField:    p.IDField,
		Indent:     p.Indent,
	}, nil
}
