package codec

import "encoding/json"

// JSON encodes with encoding/json. Journals written with it replay without
// goccy/go-json in the reading binary.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name is recorded in journal headers as "json".
func (JSON) Name() string { return "json" }

// Default encodes the Start meta of new journals and archived run reports.
var Default Codec = GoJSON{}
