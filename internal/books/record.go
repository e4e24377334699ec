package books

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is an upstream invoice payload from the Books accounting API.
// Field names vary by source system, so the shape stays an open mapping
// and values are coerced only at the normalizer boundary.
type Record map[string]any

// truthy reports whether v counts as present for fallback-chain purposes.
// The upstream API's own clients select fields by JavaScript truthiness, so
// nil, "", numeric zero, NaN and false all count as absent. Integrations
// depend on this exact behavior, including the zero-skip quirk it implies.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint64:
		return t != 0
	case json.Number:
		n, err := t.Float64()
		return err != nil || (n != 0 && !math.IsNaN(n))
	default:
		return true
	}
}

// safeStr converts any value to a string. nil becomes "". Never fails.
func safeStr(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// safeNum converts any value to a finite float64. NaN, infinities,
// non-numeric strings and everything else unconvertible become 0.
func safeNum(v any) float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return finite(n)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		return finite(n)
	default:
		return 0
	}
}

func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// cleanToken trims whitespace from a string-like value, treating nil as "".
func cleanToken(v any) string {
	return strings.TrimSpace(safeStr(v))
}

// field yields one candidate value from a record.
type field func(Record) any

// key reads a top-level field.
func key(name string) field {
	return func(r Record) any { return r[name] }
}

// path walks nested maps, e.g. path("customer", "name").
func path(names ...string) field {
	return func(r Record) any {
		cur := any(map[string]any(r))
		for _, name := range names {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[name]
		}
		return cur
	}
}

// stringKey yields the field only when it holds a bare string, for fields
// that may carry either an object or a plain name.
func stringKey(name string) field {
	return func(r Record) any {
		if s, ok := r[name].(string); ok {
			return s
		}
		return nil
	}
}

// pickString evaluates candidates in priority order and returns the first
// truthy one converted to a string, else the default.
func pickString(r Record, def string, fields ...field) string {
	for _, f := range fields {
		if v := f(r); truthy(v) {
			return safeStr(v)
		}
	}
	return def
}

// pickNumber evaluates candidates in priority order and returns the first
// whose coerced number is non-zero, else the default. A candidate holding a
// legitimate 0 is skipped in favor of later candidates; see MapBooksInvoice.
func pickNumber(r Record, def float64, fields ...field) float64 {
	for _, f := range fields {
		if n := safeNum(f(r)); n != 0 {
			return n
		}
	}
	return def
}
