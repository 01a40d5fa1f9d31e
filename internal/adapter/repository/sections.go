package repository

import "encoding/json"

// encodeSections serializes resume sections for the JSON column. A nil slice
// is stored as NULL.
func encodeSections(sections []interface{}) ([]byte, error) {
	if sections == nil {
		return nil, nil
	}
	return json.Marshal(sections)
}

// decodeSections is lenient: NULL, empty, malformed or non-array content all
// come back as an empty list.
func decodeSections(raw []byte) []interface{} {
	if len(raw) == 0 {
		return []interface{}{}
	}
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []interface{}{}
	}
	return out
}
