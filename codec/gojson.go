package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes with goccy/go-json. Its bytes decode with JSON as well, so
// a report archived by one codec loads with the other.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name is recorded in journal headers as "go-json".
func (GoJSON) Name() string { return "go-json" }
