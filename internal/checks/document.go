package checks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/weights"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a score document is not a JSON/YAML object.
var ErrNotMapping = errors.New("score document must be an object")

// Document is a parsed score request: a check collection plus optional
// per-request weight multipliers.
type Document struct {
	// Checks holds the check collection in document order.
	Checks []Entry
	// Weights holds the raw multiplier table; non-numeric values are ignored
	// when resolved.
	Weights weights.Loose
}

// Results decodes the document's checks.
func (d *Document) Results() ([]models.CheckResult, []Skipped) {
	return DecodeEntries(d.Checks)
}

// DecodeDocument parses a JSON or YAML score document of the form
// {"checks": [...] | {...}, "weights": {...}}. Keyed check collections keep
// the order they appear in the document. An empty input is an empty document.
func DecodeDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		// yaml.v3 rejects some valid JSON (e.g. tab indentation); fall back to
		// encoding/json, which loses the order of keyed collections.
		if doc, jsonErr := decodeJSONDocument(data); jsonErr == nil {
			return doc, nil
		}
		return nil, fmt.Errorf("parsing score document: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return &Document{}, nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	doc := &Document{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "checks":
			doc.Checks = nodeEntries(val)
		case "weights":
			doc.Weights = nodeWeights(val)
		}
	}
	return doc, nil
}

// nodeEntries walks a sequence or mapping node without losing order. An item
// that fails to decode is kept with its error so it is skipped, not fatal.
func nodeEntries(n *yaml.Node) []Entry {
	switch n.Kind {
	case yaml.SequenceNode:
		entries := make([]Entry, 0, len(n.Content))
		for _, item := range n.Content {
			entries = append(entries, nodeEntry("", item))
		}
		return entries
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, nodeEntry(n.Content[i].Value, n.Content[i+1]))
		}
		return entries
	default:
		// A scalar or null checks value is an empty collection.
		return nil
	}
}

func nodeEntry(key string, n *yaml.Node) Entry {
	var v any
	if err := n.Decode(&v); err != nil {
		return Entry{Key: key, Err: fmt.Errorf("decoding check: %w", err)}
	}
	return Entry{Key: key, Value: v}
}

// nodeWeights decodes a weights mapping key by key; values that do not
// decode are dropped like any other non-numeric multiplier.
func nodeWeights(n *yaml.Node) weights.Loose {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	w := make(weights.Loose, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v any
		if err := n.Content[i+1].Decode(&v); err != nil {
			continue
		}
		w[n.Content[i].Value] = v
	}
	return w
}

func decodeJSONDocument(data []byte) (*Document, error) {
	var raw struct {
		Checks  any            `json:"checks"`
		Weights map[string]any `json:"weights"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	doc := &Document{Weights: weights.Loose(raw.Weights)}
	switch c := raw.Checks.(type) {
	case []any:
		for _, item := range c {
			doc.Checks = append(doc.Checks, Entry{Value: item})
		}
	case map[string]any:
		for _, k := range sortedKeys(c) {
			doc.Checks = append(doc.Checks, Entry{Key: k, Value: c[k]})
		}
	}
	return doc, nil
}
