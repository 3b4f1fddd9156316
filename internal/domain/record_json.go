package domain

import (
	"strconv"

	"github.com/goccy/go-json"
)

// UnmarshalJSON decodes a record leniently: missing or null fields become "",
// numbers and booleans keep their literal text, nested values are dropped.
// One odd field must not cost the whole collection.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Record{
		Name:      scalarString(raw["name"]),
		Author:    scalarString(raw["author"]),
		Subject:   scalarString(raw["subject"]),
		Published: scalarString(raw["published"]),
	}
	return nil
}

func scalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
