package options

import (
	"fmt"
	"math"
)

// toFloat64 coerces a numeric value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// SameID compares option ids. Numbers are compared by value so that an id
// decoded from JSON (float64) matches one read from YAML (int); booleans only
// match booleans; everything else is compared by its string form.
func SameID(a, b interface{}) bool {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		return math.Abs(af-bf) < 1e-9
	}
	if aok != bok {
		return false
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	if _, ok := b.(bool); ok {
		return false
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// Filter keeps the options whose id appears in ids. The result follows the
// order of opts, not of ids.
func Filter(opts []Option, ids []interface{}) []Option {
	out := make([]Option, 0, len(ids))
	for _, o := range opts {
		for _, id := range ids {
			if SameID(o.ID, id) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// IDs returns the ids of opts in order.
func IDs(opts []Option) []interface{} {
	out := make([]interface{}, len(opts))
	for i, o := range opts {
		out[i] = o.ID
	}
	return out
}
