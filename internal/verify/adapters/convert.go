package adapters

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// object is a decoded vendor JSON document. Vendor payloads are loosely
// typed; these helpers coalesce across the alternate field names vendors use
// and tolerate numbers arriving as strings.
type object map[string]any

func decodeObject(raw json.RawMessage) object {
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil
	}
	return o
}

// child returns a nested object, or nil when absent or not an object.
func (o object) child(key string) object {
	m, _ := o[key].(map[string]any)
	return object(m)
}

// list returns a nested array, or nil.
func (o object) list(key string) []any {
	l, _ := o[key].([]any)
	return l
}

// str returns the first non-empty value among keys, stringified.
func (o object) str(keys ...string) string {
	for _, k := range keys {
		if s := stringify(o[k]); s != "" {
			return s
		}
	}
	return ""
}

// boolPtr returns the first present boolean among keys, or nil.
func (o object) boolPtr(keys ...string) *bool {
	for _, k := range keys {
		if b, ok := o[k].(bool); ok {
			v := b
			return &v
		}
	}
	return nil
}

// decimal parses the first present value among keys as a number. String
// values may carry thousands separators ("1,234.50"); unparsable values
// come back nil rather than failing the record.
func (o object) decimal(keys ...string) *float64 {
	for _, k := range keys {
		v, ok := o[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			f := t
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(t, ",", ""))
			if s == "" {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil
			}
			return &f
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// normalizeDate canonicalizes DD-MM-YYYY vendor dates to YYYY-MM-DD. Values
// already in YYYY-MM-DD pass through; anything else is kept as received.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse("02-01-2006", s); err == nil {
		return t.Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s
	}
	return s
}
