package kvdrop

import (
	"bytes"
	"encoding/json"
)

// NormalizeStructured converts a structured JSON payload into candidates.
//
// An array maps every element to a candidate, copying key and value verbatim
// without trimming or filtering. Fields that are absent or null are listed in
// Candidate.Missing instead of being silently coerced. A single object yields
// one candidate when it exposes a key or a value. Any other shape yields
// nothing. Non-string values are carried as their compact JSON text.
//
// Returns EMALFORMED if raw is not valid JSON.
func NormalizeStructured(raw string) ([]Candidate, error) {
	var root json.RawMessage
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		return nil, Errorf(EMALFORMED, "failed to parse structured payload: %v", err)
	}

	switch firstByte(root) {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(root, &items); err != nil {
			return nil, Errorf(EMALFORMED, "failed to parse structured payload: %v", err)
		}
		candidates := make([]Candidate, 0, len(items))
		for _, item := range items {
			fields := objectFields(item)
			candidates = append(candidates, structuredCandidate(fields))
		}
		return candidates, nil

	case '{':
		fields := objectFields(root)
		_, hasKey := fields[string(FieldKey)]
		_, hasValue := fields[string(FieldValue)]
		if !hasKey && !hasValue {
			return nil, nil
		}
		return []Candidate{structuredCandidate(fields)}, nil
	}

	return nil, nil
}

// objectFields decodes a JSON object. Non-objects decode to no fields.
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	if firstByte(raw) != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func structuredCandidate(fields map[string]json.RawMessage) Candidate {
	var c Candidate
	var ok bool
	if c.Key, ok = fieldText(fields[string(FieldKey)]); !ok {
		c.Missing = append(c.Missing, FieldKey)
	}
	if c.Value, ok = fieldText(fields[string(FieldValue)]); !ok {
		c.Missing = append(c.Missing, FieldValue)
	}
	return c
}

// fieldText renders a JSON value as text. Absent and null values report false.
func fieldText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	if firstByte(raw) == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

func firstByte(raw []byte) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
