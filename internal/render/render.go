// Package render serializes an ordered list into one of the output formats.
//
// Every serializer walks the list from head to tail exactly once and never
// modifies it, so rendering the same list twice gives identical bytes.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
	"github.com/roach88/wdlabelbuilder/internal/synth"
)

// QuickStatementsURL is the base every URL-mode payload starts with.
const QuickStatementsURL = "https://tools.wmflabs.org/quickstatements/#v1="

// URLNotice is shown on the status channel after a URL is produced.
const URLNotice = "NOTICE: When opening the url in a browser, it might take a moment for the page to load."

// Render dispatches to the serializer for format.
func Render(l *orderedlist.List, format Format, opts Options) (*Output, error) {
	if opts.Type == TypeUnset {
		return nil, fmt.Errorf("no output type selected: need label, description or alias")
	}

	switch format {
	case FormatTabular, "":
		payload, count := Tabular(l, opts)
		return &Output{
			Payload: payload,
			Count:   count,
			Notices: []string{fmt.Sprintf("%d lines saved.", count)},
		}, nil
	case FormatJSON:
		payload, count := JSON(l, opts)
		return &Output{
			Payload: payload,
			Count:   count,
			Notices: []string{fmt.Sprintf("%d lines saved.", count)},
		}, nil
	case FormatURL:
		payload, count := URL(l, opts)
		return &Output{
			Payload: payload,
			Count:   count,
			Notices: []string{fmt.Sprintf("%d items processed.", count), URLNotice},
		}, nil
	default:
		return nil, fmt.Errorf("invalid format %q: must be one of %v", format, ValidFormats)
	}
}

// text returns the synthesized term for a node, NFC normalized.
func text(n orderedlist.Node, opts synth.Options) string {
	return norm.NFC.String(synth.Synthesize(n, opts))
}

// Tabular renders QuickStatements v1 commands, one per node:
//
//	Q2052948<TAB>Lfi<TAB>"eduskuntavaalit 1907"
func Tabular(l *orderedlist.List, opts Options) ([]byte, int) {
	var buf bytes.Buffer
	count := 0
	term := opts.Type.Code() + opts.Language

	for n := range l.All() {
		buf.WriteString(n.ID)
		buf.WriteByte('\t')
		buf.WriteString(term)
		buf.WriteByte('\t')
		buf.WriteByte('"')
		buf.WriteString(text(n, opts.Synth))
		buf.WriteByte('"')
		buf.WriteByte('\n')
		count++
	}
	return buf.Bytes(), count
}

var urlEscaper = strings.NewReplacer(
	" ", "%20",
	"\t", "%09",
	"\"", "%22",
	"\n", "%0A",
)

// URL renders the tabular commands as a single QuickStatements link.
// Spaces, tabs, quotes and newlines are percent-encoded and one trailing
// encoded newline is dropped. The payload ends with a plain newline.
func URL(l *orderedlist.List, opts Options) ([]byte, int) {
	commands, count := Tabular(l, opts)
	encoded := strings.TrimSuffix(urlEscaper.Replace(string(commands)), "%0A")

	var buf bytes.Buffer
	buf.Grow(len(QuickStatementsURL) + len(encoded) + 1)
	buf.WriteString(QuickStatementsURL)
	buf.WriteString(encoded)
	buf.WriteByte('\n')
	return buf.Bytes(), count
}
