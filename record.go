package kvdrop

// Field names one editable field of a record.
type Field string

// Editable record fields.
const (
	FieldKey   Field = "key"
	FieldValue Field = "value"
)

// ParseField converts a field name into a Field.
// Returns EINVALID for anything other than "key" or "value".
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldKey, FieldValue:
		return f, nil
	}
	return "", Errorf(EINVALID, "unknown field %q: must be %q or %q", s, FieldKey, FieldValue)
}

// Record is a stored, uniquely identified, user-editable key-value pair.
// The ID is assigned once when the record is accepted and never changes.
type Record struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Get returns the named field of the record.
func (r *Record) Get(field Field) string {
	if field == FieldKey {
		return r.Key
	}
	return r.Value
}

// Candidate is a key-value pair produced by a parser that has not yet been
// admitted to a Store.
type Candidate struct {
	Key   string
	Value string

	// Missing lists fields the producer omitted. Only structured payloads
	// produce candidates with missing fields; they are stored as empty strings.
	Missing []Field
}

// Complete reports whether the producer supplied both fields.
func (c *Candidate) Complete() bool {
	return len(c.Missing) == 0
}

// Dataset is a named, exportable collection of records.
type Dataset struct {
	Name    string
	Records []Record
}
