package render

import (
	"fmt"
	"strings"

	"github.com/roach88/wdlabelbuilder/internal/synth"
)

// OutputType selects which item term is generated.
type OutputType int

const (
	TypeUnset OutputType = iota
	TypeLabel
	TypeDescription
	TypeAlias
)

// Code is the QuickStatements v1 term prefix: L, D or A.
func (t OutputType) Code() string {
	switch t {
	case TypeLabel:
		return "L"
	case TypeDescription:
		return "D"
	case TypeAlias:
		return "A"
	default:
		return ""
	}
}

// Field is the JSON field name the synthesized text is stored under.
func (t OutputType) Field() string {
	switch t {
	case TypeLabel:
		return "label"
	case TypeDescription:
		return "description"
	case TypeAlias:
		return "alias"
	default:
		return ""
	}
}

func (t OutputType) String() string {
	if f := t.Field(); f != "" {
		return f
	}
	return "unset"
}

// ParseOutputType maps "label", "description" or "alias" (or their single
// letter codes) to an OutputType.
func ParseOutputType(s string) (OutputType, error) {
	switch strings.ToLower(s) {
	case "label", "l":
		return TypeLabel, nil
	case "description", "d":
		return TypeDescription, nil
	case "alias", "a":
		return TypeAlias, nil
	default:
		return TypeUnset, fmt.Errorf("unknown output type %q: must be one of label, description, alias", s)
	}
}

// Format selects the serialization.
type Format string

const (
	FormatTabular Format = "tabular" // QuickStatements v1 commands
	FormatJSON    Format = "json"
	FormatURL     Format = "url" // QuickStatements link
)

// ValidFormats lists the supported formats.
var ValidFormats = []Format{FormatTabular, FormatJSON, FormatURL}

// ParseFormat validates a format name. The empty string selects tabular.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatTabular, nil
	}
	for _, f := range ValidFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %v", s, ValidFormats)
}

// DefaultIDField is the JSON field name for item identifiers.
const DefaultIDField = "item"

// Options holds everything a serializer needs besides the list.
type Options struct {
	Type     OutputType
	Language string
	Synth    synth.Options

	// IDField names the identifier field in JSON output. Defaults to "item".
	IDField string

	// Indent > 0 lays JSON out over multiple lines with that many spaces
	// per level.
	Indent int
}

func (o Options) idField() string {
	if o.IDField == "" {
		return DefaultIDField
	}
	return o.IDField
}

// Output is a rendered payload plus the status lines meant for the user,
// which are never part of the payload.
type Output struct {
	Payload []byte
	Count   int
	Notices []string
}
