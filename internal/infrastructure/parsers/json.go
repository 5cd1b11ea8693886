package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses record rows from a JSON array of objects. Non-string
// values are stringified, matching what a CSV export of the same data
// would contain.
type JSONParser struct{}

// Parse reads JSON from the reader and returns one rowd per object.
func (p *JSONParser) Parse(r io.Reader) ([]Rowd, error) {
	var raw []map[string]any

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	rowds := make([]Rowd, len(raw))
	for i, obj := range raw {
		rowd := make(Rowd, len(obj))
		for key, val := range obj {
			rowd[key] = stringify(val)
		}
		rowds[i] = rowd
	}

	return rowds, nil
}

func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; ids are integral
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
