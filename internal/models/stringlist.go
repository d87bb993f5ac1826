package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
)

// StringList is an ordered list of free-text values persisted as JSON text.
// Duplicates are kept and order is display order.
type StringList []string

// Value encodes the list as a JSON array. A nil list is stored as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan never fails: whatever the column holds is run through ParseStringList.
func (l *StringList) Scan(src any) error {
	*l = ParseStringList(src)
	return nil
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// UnmarshalJSON accepts anything ParseStringList accepts.
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = ParseStringList(data)
	return nil
}

// ParseStringList turns the raw persisted form of a list into its in-memory
// form. It is total: nil, malformed JSON or a non-array value all yield an
// empty list. A JSON string holding an encoded array is unwrapped once, scalar
// elements are stringified and null or nested values are dropped.
func ParseStringList(raw any) StringList {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return StringList{}
	case StringList:
		return append(StringList{}, v...)
	case []string:
		return append(StringList{}, v...)
	case []any:
		return fromValues(v)
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return StringList{}
	}
	return parseListJSON(data, true)
}

func parseListJSON(data []byte, unwrap bool) StringList {
	if len(data) == 0 {
		return StringList{}
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return StringList{}
	}
	switch v := decoded.(type) {
	case []any:
		return fromValues(v)
	case string:
		if unwrap {
			return parseListJSON([]byte(v), false)
		}
	}
	return StringList{}
}

func fromValues(values []any) StringList {
	out := make(StringList, 0, len(values))
	for _, item := range values {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case int:
			out = append(out, strconv.Itoa(v))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	return out
}
