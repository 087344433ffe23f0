// Package builder is the core entry point: it orders a batch of records by
// their point-in-time keys and renders the synthesized terms.
//
// Generate runs in two phases. All records are inserted into the ordered
// list first; only then is the list read to synthesize and serialize. The
// batch and the list belong to a single call and are never shared.
package builder

import (
	"fmt"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
	"github.com/roach88/wdlabelbuilder/internal/pointintime"
	"github.com/roach88/wdlabelbuilder/internal/render"
	"github.com/roach88/wdlabelbuilder/internal/synth"
)

// Config is the resolved generation configuration.
type Config struct {
	Language   string
	Type       render.OutputType
	Format     render.Format
	Prefix     string
	Suffix     string
	Timeseries bool

	// IDField names the identifier field in JSON output.
	IDField string
	// Indent lays JSON out over multiple lines when > 0.
	Indent int
}

// Validate reports configuration the core cannot act on.
func (c Config) Validate() error {
	if c.Type == render.TypeUnset {
		return fmt.Errorf("no output type selected: need label, description or alias")
	}
	if _, err := render.ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	return nil
}

func (c Config) renderOptions() render.Options {
	return render.Options{
		Type:     c.Type,
		Language: c.Language,
		Synth: synth.Options{
			Prefix:     c.Prefix,
			Suffix:     c.Suffix,
			Timeseries: c.Timeseries,
		},
		IDField: c.IDField,
		Indent:  c.Indent,
	}
}

// Result is the rendered payload ready to be written by the caller.
type Result struct {
	Payload []byte
	Count   int
	Format  render.Format

	// Notices are status lines for the user, never part of Payload.
	Notices []string
}

// Generate orders records and renders them per cfg.
// The only error is an invalid cfg; ordering and rendering always succeed.
func Generate(records []orderedlist.Record, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	list := orderedlist.Build(records)

	format, _ := render.ParseFormat(string(cfg.Format))
	out, err := render.Render(list, format, cfg.renderOptions())
	if err != nil {
		return nil, err
	}

	return &Result{
		Payload: out.Payload,
		Count:   out.Count,
		Format:  format,
		Notices: out.Notices,
	}, nil
}

// Entry describes one node of the ordered list for inspection.
type Entry struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Key      string `json:"key"`
	Kind     string `json:"kind"`
	Next     string `json:"next,omitempty"` // key of the following node
}

// Inspect orders records and describes the resulting list from head to tail.
func Inspect(records []orderedlist.Record) []Entry {
	list := orderedlist.Build(records)
	nodes := list.Nodes()

	entries := make([]Entry, len(nodes))
	for i, n := range nodes {
		entries[i] = Entry{
			Position: i + 1,
			ID:       n.ID,
			Label:    n.Label,
			Key:      n.Key.String(),
			Kind:     pointintime.Kind(n.Key),
		}
		if i+1 < len(nodes) {
			entries[i].Next = nodes[i+1].Key.String()
		}
	}
	return entries
}
