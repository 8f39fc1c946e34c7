// Package jsonschema validates persisted record lists against a JSON Schema.
package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/fwojciec/kvdrop"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RecordsSchema describes the persisted record list: an array of objects
// with a non-empty string id and string key and value.
const RecordsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "key", "value"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"key": {"type": "string"},
			"value": {"type": "string"}
		}
	}
}`

// Ensure Validator implements kvdrop.SnapshotValidator.
var _ kvdrop.SnapshotValidator = (*Validator)(nil)

// Validator checks persisted record JSON against RecordsSchema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles RecordsSchema.
func NewValidator() (*Validator, error) {
	schema, err := jsonschema.CompileString("records.schema.json", RecordsSchema)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// ValidateRecords returns EMALFORMED if data is not a valid record list.
func (v *Validator) ValidateRecords(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return kvdrop.Errorf(kvdrop.EMALFORMED, "stored records are not JSON: %v", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return kvdrop.Errorf(kvdrop.EMALFORMED, "stored records do not match schema: %v", err)
	}
	return nil
}
