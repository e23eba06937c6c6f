package platforms

import (
	"bytes"
	"encoding/json"
)

// fields is a JSON object whose values are decoded one at a time, so a value
// that drifted to another type reads as its zero value instead of failing
// the whole payload.
type fields map[string]json.RawMessage

// asFields decodes raw as an object. Anything else, null included, yields nil.
func asFields(raw json.RawMessage) fields {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return f
}

func (f fields) raw(name string) json.RawMessage {
	return f[name]
}

func (f fields) object(name string) fields {
	return asFields(f[name])
}

// objects reads name as an array, dropping elements that are not objects.
func (f fields) objects(name string) []fields {
	var items []json.RawMessage
	if err := json.Unmarshal(f[name], &items); err != nil {
		return nil
	}
	out := make([]fields, 0, len(items))
	for _, item := range items {
		if obj := asFields(item); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

func (f fields) str(name string) string {
	var s string
	if err := json.Unmarshal(f[name], &s); err != nil {
		return ""
	}
	return s
}

// integer reads name as a whole JSON number. Quoted numbers, fractions and
// null are reported as absent.
func (f fields) integer(name string) (int, bool) {
	raw := bytes.TrimSpace(f[name])
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}
