// Package input reads record batches exported from the Wikidata query
// service and turns them into records for the builder.
//
// Files are arrays of objects. The identifier and label fields are looked
// up by name (defaults "item" and "itemLabel"). Any failure fails the whole
// batch; nothing is returned for a partially valid file.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
)

// Error codes reported by Load.
const (
	ErrCodeNotFound     = "E201" // Input file missing or not a regular file
	ErrCodeMalformed    = "E202" // Not valid JSON/YAML, or not an array of objects
	ErrCodeEmpty        = "E203" // No records in the file
	ErrCodeMissingField = "E204" // Identifier or label field absent
	ErrCodeEmptyLabel   = "E205" // Label present but empty
	ErrCodeFieldType    = "E206" // Field value is not text
	ErrCodeReadFailed   = "E207" // I/O error while reading
)

// Fields names the identifier and label fields of each object.
type Fields struct {
	ID    string
	Label string
}

// DefaultFields matches the column names of a "SELECT ?item ?itemLabel"
// query.
func DefaultFields() Fields {
	return Fields{ID: "item", Label: "itemLabel"}
}

// LoadError describes why a batch could not be loaded.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// value is a field value as found in the file.
type value struct {
	text   string
	isText bool
}

// object preserves the field names of one array element.
type object map[string]value

// Load reads path and returns its records in file order.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
func Load(path string, fields Fields) ([]orderedlist.Record, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: fmt.Sprintf("failed to find the file: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: fmt.Sprintf("failed to access %s", path), Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}

	var objects []object
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		objects, err = decodeYAML(data)
	default:
		objects, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeMalformed, Path: path, Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}

	records, err := toRecords(objects, fields)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return records, nil
}

func decodeJSON(data []byte) ([]object, error) {
	var raw []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after the JSON array")
	}

	objects := make([]object, 0, len(raw))
	for _, m := range raw {
		obj := make(object, len(m))
		for k, v := range m {
			var s string
			if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				obj[k] = value{text: "null"}
			} else if err := json.Unmarshal(v, &s); err == nil {
				obj[k] = value{text: s, isText: true}
			} else {
				obj[k] = value{text: string(v)}
			}
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// decodeYAML keeps scalars as written, so an unquoted 1907 stays "1907".
func decodeYAML(data []byte) ([]object, error) {
	var raw []map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("expected a YAML sequence of mappings: %w", err)
	}

	objects := make([]object, 0, len(raw))
	for _, m := range raw {
		obj := make(object, len(m))
		for k, n := range m {
			isScalar := n.Kind == yaml.ScalarNode && n.Tag != "!!null"
			obj[k] = value{text: n.Value, isText: isScalar}
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func toRecords(objects []object, fields Fields) ([]orderedlist.Record, error) {
	if len(objects) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "failed to read items from file: no records"}
	}

	records := make([]orderedlist.Record, 0, len(objects))
	for i, obj := range objects {
		id, idOK := obj[fields.ID]
		label, labelOK := obj[fields.Label]
		if !idOK || !labelOK {
			return nil, &LoadError{
				Code: ErrCodeMissingField,
				Message: fmt.Sprintf("record %d: failed to find one or more of the json titles: expected %q and %q, found %s",
					i, fields.ID, fields.Label, quoteAll(obj.keys())),
			}
		}
		if !id.isText {
			return nil, &LoadError{Code: ErrCodeFieldType, Message: fmt.Sprintf("record %d: field %q is not text: %s", i, fields.ID, id.text)}
		}
		if !label.isText {
			return nil, &LoadError{Code: ErrCodeFieldType, Message: fmt.Sprintf("record %d: field %q is not text: %s", i, fields.Label, label.text)}
		}
		if strings.TrimSpace(label.text) == "" {
			return nil, &LoadError{Code: ErrCodeEmptyLabel, Message: fmt.Sprintf("record %d (%s): label is empty", i, id.text)}
		}

		records = append(records, orderedlist.Record{
			ID:    EntityID(id.text),
			Label: label.text,
		})
	}
	return records, nil
}

func (o object) keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func quoteAll(ss []string) string {
	if len(ss) == 0 {
		return "no fields"
	}
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, " and ")
}

// EntityID reduces an entity URL to its last path segment:
// "http://www.wikidata.org/entity/Q2052948" becomes "Q2052948".
// Plain identifiers are returned unchanged.
func EntityID(s string) string {
	return s[strings.LastIndexByte(s, '/')+1:]
}
