package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wdlabelbuilder/internal/render"
	"github.com/roach88/wdlabelbuilder/internal/testutil"
)

func requireConfigError(t *testing.T, err error, field string) *ConfigError {
	t.Helper()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %T: %v", err, err)
	assert.Equal(t, field, cfgErr.Field, cfgErr.Error())
	return cfgErr
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "tabular", p.Format)
	assert.Equal(t, "item", p.IDField)
	assert.Equal(t, "itemLabel", p.LabelField)
	assert.Empty(t, p.Type)
	assert.False(t, p.Timeseries)
}

func TestLoad_OverridesOnly(t *testing.T) {
	p, err := Load("", map[string]any{
		KeyLanguage:   "fi",
		KeyType:       "label",
		KeyPrefix:     "eduskuntavaalit",
		KeyTimeseries: true,
	})
	require.NoError(t, err)

	assert.Equal(t, &Profile{
		Language:   "fi",
		Type:       "label",
		Format:     "tabular",
		Prefix:     "eduskuntavaalit",
		Timeseries: true,
		IDField:    "item",
		LabelField: "itemLabel",
	}, p)
}

func TestLoad_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "profile.yaml", `
language: fi
type: description
format: json
suffix: eduskuntavaalit
timeseries: true
indent: 2
qtitle: qid
`)

	p, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "fi", p.Language)
	assert.Equal(t, "description", p.Type)
	assert.Equal(t, "json", p.Format)
	assert.Equal(t, "eduskuntavaalit", p.Suffix)
	assert.True(t, p.Timeseries)
	assert.Equal(t, 2, p.Indent)
	assert.Equal(t, "qid", p.IDField)
	assert.Equal(t, "itemLabel", p.LabelField)
}

func TestLoad_JSONProfileFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "profile.json",
		`{"language": "en", "type": "alias", "format": "url"}`)

	p, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "alias", p.Type)
	assert.Equal(t, "url", p.Format)
}

func TestLoad_OverridesBeatProfile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "profile.yaml", "language: fi\ntype: label\nprefix: vaalit\n")

	p, err := Load(path, map[string]any{KeyPrefix: "eduskuntavaalit", KeyType: "alias"})
	require.NoError(t, err)
	assert.Equal(t, "eduskuntavaalit", p.Prefix)
	assert.Equal(t, "alias", p.Type)
	assert.Equal(t, "fi", p.Language)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("WDLB_SUFFIX", "vaalit")
	t.Setenv("WDLB_TIMESERIES", "true")

	p, err := Load("", map[string]any{KeyLanguage: "fi", KeyType: "label"})
	require.NoError(t, err)
	assert.Equal(t, "vaalit", p.Suffix)
	assert.True(t, p.Timeseries)
}

func TestLoad_EnvironmentBeatsProfile(t *testing.T) {
	t.Setenv("WDLB_PREFIX", "from-env")
	path := testutil.WriteFile(t, t.TempDir(), "profile.yaml", "language: fi\ntype: label\nprefix: from-file\n")

	p, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", p.Prefix)
}

func TestLoad_MissingProfileFile(t *testing.T) {
	_, err := Load(t.TempDir()+"/missing.yaml", map[string]any{KeyLanguage: "fi", KeyType: "label"})
	cfgErr := requireConfigError(t, err, "")
	assert.Equal(t, ErrCodeProfileRead, cfgErr.Code)
}

func TestRead_SkipsValidation(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "profile.yaml", "qtitle: qid\nltitle: name\n")

	p, err := Read(path, nil)
	require.NoError(t, err)
	assert.Empty(t, p.Type)
	assert.Equal(t, "qid", p.Fields().ID)
	assert.Equal(t, "name", p.Fields().Label)

	_, err = Load(path, nil)
	requireConfigError(t, err, KeyType)
}

func TestLoad_NoType(t *testing.T) {
	_, err := Load("", map[string]any{KeyLanguage: "fi"})
	cfgErr := requireConfigError(t, err, KeyType)
	assert.Equal(t, ErrCodeInvalidProfile, cfgErr.Code)
	assert.Contains(t, cfgErr.Error(), "label, alias or description")
}

func TestValidate_Schema(t *testing.T) {
	valid := func() *Profile {
		p := DefaultProfile()
		p.Language = "fi"
		p.Type = "label"
		return p
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(p *Profile)
		field  string
	}{
		{"unknown type", func(p *Profile) { p.Type = "title" }, KeyType},
		{"unknown format", func(p *Profile) { p.Format = "xml" }, KeyFormat},
		{"uppercase language", func(p *Profile) { p.Language = "FI" }, KeyLanguage},
		{"language with spaces", func(p *Profile) { p.Language = "f i" }, KeyLanguage},
		{"missing language", func(p *Profile) { p.Language = "" }, KeyLanguage},
		{"empty id field", func(p *Profile) { p.IDField = "" }, KeyIDField},
		{"empty label field", func(p *Profile) { p.LabelField = "" }, KeyLabelField},
		{"negative indent", func(p *Profile) { p.Indent = -1 }, KeyIndent},
		{"huge indent", func(p *Profile) { p.Indent = 100 }, KeyIndent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			requireConfigError(t, p.Validate(), tt.field)
		})
	}
}

func TestValidate_WikimediaLanguageCodes(t *testing.T) {
	for _, code := range []string{"fi", "en", "sv", "be-tarask", "zh-min-nan", "simple", "de-formal"} {
		t.Run(code, func(t *testing.T) {
			p := DefaultProfile()
			p.Language = code
			p.Type = "label"
			assert.NoError(t, p.Validate())
		})
	}
}

func TestWarnings(t *testing.T) {
	p := DefaultProfile()
	p.Language = "fi"
	p.Type = "label"
	assert.Empty(t, p.Warnings())

	p.Language = "simple"
	assert.Len(t, p.Warnings(), 1)

	p.Language = "fi"
	p.Indent = 4
	assert.Len(t, p.Warnings(), 1)

	p.Format = "json"
	assert.Empty(t, p.Warnings())
}

func TestBuilderConfig(t *testing.T) {
	p := &Profile{
		Language:   "fi",
		Type:       "alias",
		Format:     "json",
		Prefix:     "p",
		Suffix:     "s",
		Timeseries: true,
		IDField:    "qid",
		LabelField: "name",
		Indent:     4,
	}

	cfg, err := p.BuilderConfig()
	require.NoError(t, err)
	assert.Equal(t, render.TypeAlias, cfg.Type)
	assert.Equal(t, render.FormatJSON, cfg.Format)
	assert.Equal(t, "qid", cfg.IDField)
	assert.Equal(t, 4, cfg.Indent)
	assert.True(t, cfg.Timeseries)

	assert.Equal(t, "qid", p.Fields().ID)
	assert.Equal(t, "name", p.Fields().Label)
}

func TestBuilderConfig_InvalidType(t *testing.T) {
	_, err := (&Profile{Language: "fi", Type: "bogus", Format: "tabular"}).BuilderConfig()
	requireConfigError(t, err, KeyType)
}
