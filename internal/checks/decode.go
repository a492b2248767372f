// Package checks turns raw check records produced by the check registry into
// validated models.CheckResult values.
//
// Ingestion never fails as a whole: entries that cannot be used are reported
// as Skipped and left out, and bad optional fields fall back to defaults.
package checks

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/weights"
)

// Skipped describes an input entry that was left out of the result set.
type Skipped struct {
	// Index is the entry position in the input collection.
	Index int `json:"index"`
	// Key is the collection key for keyed input; empty for lists.
	Key    string `json:"key,omitempty"`
	Reason string `json:"reason"`
}

func (s Skipped) String() string {
	if s.Key != "" {
		return fmt.Sprintf("entry %q: %s", s.Key, s.Reason)
	}
	return fmt.Sprintf("entry %d: %s", s.Index, s.Reason)
}

// Entry is one element of an ordered check collection. Key is set for keyed
// collections and used as the check ID when the record has none.
type Entry struct {
	Key   string
	Value any
	// Err records why Value could not be parsed; such entries are skipped.
	Err error
}

// record mirrors the accepted wire shape of a check result.
type record struct {
	ID      string         `mapstructure:"id"`
	Status  string         `mapstructure:"status"`
	Label   string         `mapstructure:"label"`
	Title   string         `mapstructure:"title"`
	FixHint string         `mapstructure:"fix_hint"`
	Camel   string         `mapstructure:"fixHint"`
	Fix     string         `mapstructure:"fix"`
	Weight  float64        `mapstructure:"weight"`
	Details map[string]any `mapstructure:"details"`
}

// Decode converts an untyped check collection into results. It accepts an
// ordered list ([]any, []map[string]any), a keyed collection (map[string]any,
// iterated in sorted key order), an []Entry, or []models.CheckResult.
// Any other shape yields no results and a single Skipped entry.
func Decode(raw any) ([]models.CheckResult, []Skipped) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []models.CheckResult:
		return Normalize(v)
	case []Entry:
		return DecodeEntries(v)
	case []any:
		entries := make([]Entry, len(v))
		for i, item := range v {
			entries[i] = Entry{Value: item}
		}
		return DecodeEntries(entries)
	case []map[string]any:
		entries := make([]Entry, len(v))
		for i, item := range v {
			entries[i] = Entry{Value: item}
		}
		return DecodeEntries(entries)
	case map[string]any:
		keys := sortedKeys(v)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: v[k]}
		}
		return DecodeEntries(entries)
	default:
		return nil, []Skipped{{Index: 0, Reason: fmt.Sprintf("unsupported check collection type %T", raw)}}
	}
}

// DecodeEntries decodes an ordered collection, preserving its order.
func DecodeEntries(entries []Entry) ([]models.CheckResult, []Skipped) {
	var (
		results []models.CheckResult
		skipped []Skipped
	)
	for i, e := range entries {
		if e.Err != nil {
			skipped = append(skipped, Skipped{Index: i, Key: e.Key, Reason: e.Err.Error()})
			continue
		}
		r, err := decodeRecord(e.Value)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Key: e.Key, Reason: err.Error()})
			continue
		}
		if strings.TrimSpace(r.ID) == "" {
			r.ID = e.Key
		}
		results = append(results, r)
	}

	valid, rejected := Normalize(results)
	return valid, append(skipped, rejected...)
}

// Normalize validates already-typed results. It trims IDs, drops blank and
// duplicate IDs, zeroes weights outside [0, 1] and maps unknown statuses to
// fail. The input slice is not modified.
func Normalize(results []models.CheckResult) ([]models.CheckResult, []Skipped) {
	var (
		out     = make([]models.CheckResult, 0, len(results))
		skipped []Skipped
		seen    = make(map[string]bool, len(results))
	)
	for i, r := range results {
		r.ID = strings.TrimSpace(r.ID)
		switch {
		case r.ID == "":
			skipped = append(skipped, Skipped{Index: i, Reason: "missing id"})
			continue
		case seen[r.ID]:
			skipped = append(skipped, Skipped{Index: i, Key: r.ID, Reason: "duplicate id"})
			continue
		}
		seen[r.ID] = true

		r.Status = models.ParseCheckStatus(string(r.Status))
		r.Weight = normalizeWeight(r.Weight)
		out = append(out, r)
	}
	return out, skipped
}

// normalizeWeight returns w when it lies in [0, 1] and 0 otherwise,
// including NaN and infinities.
func normalizeWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return 0
	}
	return w
}

func decodeRecord(v any) (models.CheckResult, error) {
	switch r := v.(type) {
	case models.CheckResult:
		return r, nil
	case *models.CheckResult:
		if r == nil {
			return models.CheckResult{}, fmt.Errorf("nil record")
		}
		return *r, nil
	case map[string]any:
	default:
		return models.CheckResult{}, fmt.Errorf("record is %T, not an object", v)
	}

	var rec record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: lenientHook,
		Result:     &rec,
	})
	if err != nil {
		return models.CheckResult{}, err
	}
	if err := dec.Decode(v); err != nil {
		return models.CheckResult{}, fmt.Errorf("decoding record: %w", err)
	}

	label := rec.Label
	if strings.TrimSpace(label) == "" {
		label = rec.Title
	}
	hint := rec.FixHint
	for _, alt := range []string{rec.Camel, rec.Fix} {
		if strings.TrimSpace(hint) != "" {
			break
		}
		hint = alt
	}

	return models.CheckResult{
		ID:      rec.ID,
		Status:  models.CheckStatus(rec.Status),
		Label:   label,
		FixHint: hint,
		Weight:  rec.Weight,
		Details: rec.Details,
	}, nil
}

// lenientHook replaces values of the wrong type with the zero value of the
// target field, so a bad optional field falls back to its default instead of
// rejecting the whole record. A non-string id becomes blank and the record is
// then skipped as missing its id.
func lenientHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if data == nil {
		return data, nil
	}
	switch to.Kind() {
	case reflect.String:
		if from.Kind() != reflect.String {
			return "", nil
		}
	case reflect.Float64:
		f, ok := weights.ToFloat(data)
		if !ok {
			return 0.0, nil
		}
		return f, nil
	case reflect.Map:
		if from.Kind() != reflect.Map {
			return map[string]any(nil), nil
		}
	}
	return data, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
