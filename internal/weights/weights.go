// Package weights resolves per-check weight multipliers from an external
// settings source.
package weights

import (
	"encoding/json"
	"math"
)

const (
	DefaultMultiplier = 1.0
	MinMultiplier     = 0.0
	MaxMultiplier     = 10.0
)

// Provider supplies configured multipliers by check ID. Implementations must
// be safe for concurrent reads.
type Provider interface {
	// Multiplier returns the configured multiplier for id and whether one was set.
	Multiplier(id string) (float64, bool)
}

// ProviderFunc adapts a plain accessor function to a Provider.
type ProviderFunc func(id string) (float64, bool)

func (f ProviderFunc) Multiplier(id string) (float64, bool) { return f(id) }

// Static is a typed multiplier table.
type Static map[string]float64

func (s Static) Multiplier(id string) (float64, bool) {
	v, ok := s[id]
	return v, ok
}

// Loose is a multiplier table read from an untyped settings source. Entries
// whose value is not numeric are ignored.
type Loose map[string]any

func (l Loose) Multiplier(id string) (float64, bool) {
	v, ok := l[id]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Chain consults each provider in order and returns the first configured
// value. Nil providers are skipped.
type Chain []Provider

func (c Chain) Multiplier(id string) (float64, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Multiplier(id); ok {
			return v, true
		}
	}
	return 0, false
}

// FromAny turns the value returned by an untyped settings accessor into a
// Provider. Unsupported shapes yield nil, which resolves every ID to
// DefaultMultiplier.
func FromAny(v any) Provider {
	switch src := v.(type) {
	case Provider:
		return src
	case map[string]float64:
		return Static(src)
	case map[string]any:
		return Loose(src)
	default:
		return nil
	}
}

// Resolve returns the clamped multiplier for id. It never fails: a nil
// provider, a missing entry, or a NaN value all yield DefaultMultiplier.
func Resolve(p Provider, id string) float64 {
	if p == nil {
		return DefaultMultiplier
	}
	v, ok := p.Multiplier(id)
	if !ok || math.IsNaN(v) {
		return DefaultMultiplier
	}
	return Clamp(v, MinMultiplier, MaxMultiplier)
}

// Snapshot resolves every id against p exactly once and returns the result
// as an immutable table.
func Snapshot(p Provider, ids []string) Static {
	out := make(Static, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = Resolve(p, id)
	}
	return out
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToFloat converts numeric values of any Go numeric type to float64.
// Strings, booleans and other shapes are reported as not numeric.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
