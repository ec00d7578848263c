package lifecycle

import (
	"time"

	"campusfound/beacon/pkg/docstore"
)

// StringField returns the first key that holds a non-empty string.
// Non-string values are ignored rather than coerced; a record that
// stores a number where a string belongs simply reads as empty.
func StringField(fields docstore.Fields, keys ...string) string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// BoolField reads a boolean field, defaulting to false.
func BoolField(fields docstore.Fields, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// StringSliceField reads a field holding a list of strings. Both
// []string and the []any produced by JSON decoding are accepted;
// non-string elements are dropped.
func StringSliceField(fields docstore.Fields, key string) []string {
	switch v := fields[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// TimeField reads a timestamp field through the ordered coercion
// strategies. Returns nil when no strategy succeeds.
func TimeField(fields docstore.Fields, keys ...string) *time.Time {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if t, ok := CoerceTime(v); ok {
			return &t
		}
	}
	return nil
}

// TimeStrategy is one way of reading a timestamp out of a raw stored
// value. Strategies are tried in order; the first successful parse
// wins.
type TimeStrategy struct {
	Name  string
	Parse func(v any) (time.Time, bool)
}

// TimeStrategies is the ordered list of timestamp shapes observed in
// stored records: a seconds-based timestamp object, a native time
// value, an ISO date string, and an epoch-millisecond number.
var TimeStrategies = []TimeStrategy{
	{Name: "seconds-object", Parse: parseSecondsObject},
	{Name: "native-time", Parse: parseNativeTime},
	{Name: "iso-string", Parse: parseISOString},
	{Name: "epoch-millis", Parse: parseEpochMillis},
}

// CoerceTime resolves a raw timestamp value via TimeStrategies.
func CoerceTime(v any) (time.Time, bool) {
	for _, strategy := range TimeStrategies {
		if t, ok := strategy.Parse(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseSecondsObject reads {seconds, nanoseconds} maps.
func parseSecondsObject(v any) (time.Time, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return time.Time{}, false
	}

	secs, ok := numberField(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := numberField(m, "nanoseconds", "_nanoseconds", "nanos")

	return time.Unix(int64(secs), int64(nanos)), true
}

// parseNativeTime reads values already carrying a time.Time.
func parseNativeTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

// isoLayouts are the accepted string layouts, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseISOString reads RFC 3339 / ISO date strings.
func parseISOString(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEpochMillis reads epoch-millisecond numbers.
func parseEpochMillis(v any) (time.Time, bool) {
	ms, ok := toNumber(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := toNumber(m[key]); ok {
			return n, true
		}
	}
	return 0, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
