package repository

import "encoding/json"

// List-valued columns (welding types, certifications, preferred countries,
// requirements, benefits) are stored as JSON text. Encoding never fails for
// a string slice; decoding tolerates legacy empty strings.

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeList(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
