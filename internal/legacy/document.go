// Package legacy imports content exported from the document store the site
// ran on before it moved to a relational database.
package legacy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// Document is one exported record. Accessors never fail: a missing or
// malformed field reads as the zero value.
type Document map[string]any

// ID returns the document's key, reading "id" then "_id".
func (d Document) ID() string {
	if id := d.String("id"); id != "" {
		return id
	}
	return d.String("_id")
}

// String returns the field as trimmed text. Numbers and booleans are
// formatted.
func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// StringOr returns the field, or def when it is empty.
func (d Document) StringOr(key, def string) string {
	if s := d.String(key); s != "" {
		return s
	}
	return def
}

// Int returns the field as an integer. Strings are parsed, floats truncated.
func (d Document) Int(key string) int64 {
	switch v := d[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int64(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
	}
	return 0
}

// Count is Int clamped to a non-negative int.
func (d Document) Count(key string) int {
	n := d.Int(key)
	if n < 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Bool returns the field as a boolean; "true" and "1" are accepted as text.
func (d Document) Bool(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

// Strings returns the field as a list of strings.
func (d Document) Strings(key string) models.StringList {
	return models.ParseStringList(d[key])
}

// Time reads a timestamp given as an RFC 3339 string, unix seconds or
// milliseconds, or an exported {_seconds, _nanoseconds} object.
func (d Document) Time(key string) (time.Time, bool) {
	return parseTime(d[key])
}

// Doc returns a nested object.
func (d Document) Doc(key string) Document {
	return asDocument(d[key])
}

// Docs returns a nested list of objects, skipping anything that is not one.
func (d Document) Docs(key string) []Document {
	items, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Document, 0, len(items))
	for _, item := range items {
		if doc := asDocument(item); doc != nil {
			out = append(out, doc)
		}
	}
	return out
}

func asDocument(v any) Document {
	switch m := v.(type) {
	case map[string]any:
		return Document(m)
	case Document:
		return m
	case map[any]any:
		out := make(Document, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	}
	return nil
}

// Values above this are taken to be milliseconds.
const millisThreshold = 1e11

func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromUnix(n), true
		}
	case int:
		return fromUnix(int64(t)), true
	case int64:
		return fromUnix(t), true
	case float64:
		return fromUnix(int64(t)), true
	default:
		doc := asDocument(v)
		if doc == nil {
			return time.Time{}, false
		}
		key := "_seconds"
		if _, ok := doc[key]; !ok {
			key = "seconds"
		}
		if _, ok := doc[key]; !ok {
			return time.Time{}, false
		}
		nanos := doc.Int("_nanoseconds")
		if nanos == 0 {
			nanos = doc.Int("nanoseconds")
		}
		return time.Unix(doc.Int(key), nanos).UTC(), true
	}
	return time.Time{}, false
}

func fromUnix(n int64) time.Time {
	if n > millisThreshold || n < -millisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}
