// Package synth builds the new label, description or alias text for a node.
package synth

import (
	"strings"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
)

// Options controls how the text is assembled.
type Options struct {
	Prefix     string
	Suffix     string
	Timeseries bool // include the node's point-in-time key
}

// Empty reports whether the options contribute nothing, in which case
// Synthesize falls back to the original label.
func (o Options) Empty() bool {
	return o.Prefix == "" && o.Suffix == "" && !o.Timeseries
}

// Synthesize returns prefix, " "+key and " "+suffix concatenated in that
// order, each only when enabled, trimmed of surrounding whitespace.
// When nothing was contributed the original label is used.
func Synthesize(node orderedlist.Node, opts Options) string {
	var b strings.Builder
	if opts.Prefix != "" {
		b.WriteString(opts.Prefix)
	}
	if opts.Timeseries {
		b.WriteByte(' ')
		if node.Key != nil {
			b.WriteString(node.Key.String())
		}
	}
	if opts.Suffix != "" {
		b.WriteByte(' ')
		b.WriteString(opts.Suffix)
	}

	text := b.String()
	if text == "" {
		text = node.Label
	}
	return strings.TrimSpace(text)
}
