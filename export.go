package kvdrop

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Format identifies an export format.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// Serializer converts a dataset into an export document body.
type Serializer interface {
	Format() Format
	MIMEType() string
	Serialize(ds *Dataset) ([]byte, error)
}

// ExportDocument is a named, typed file-like document ready for delivery.
type ExportDocument struct {
	Filename string
	MIMEType string
	Content  []byte
}

// ValidateExport checks the export preconditions: the dataset must have at
// least one record and a non-blank name. Returns EPRECONDITION otherwise.
func ValidateExport(ds *Dataset) error {
	if ds == nil || len(ds.Records) == 0 {
		return Errorf(EPRECONDITION, "No data available to export.")
	}
	if strings.TrimSpace(ds.Name) == "" {
		return Errorf(EPRECONDITION, "Please enter a data set name.")
	}
	return nil
}

// NewExportDocument serializes ds with s after checking export preconditions.
func NewExportDocument(ds *Dataset, s Serializer) (*ExportDocument, error) {
	if err := ValidateExport(ds); err != nil {
		return nil, err
	}
	content, err := s.Serialize(ds)
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		Filename: ds.Name + "." + s.Format().Extension(),
		MIMEType: s.MIMEType(),
		Content:  content,
	}, nil
}

// Pair is the exported shape of a record. IDs are never exported.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Pairs returns the dataset records without their ids.
func (ds *Dataset) Pairs() []Pair {
	pairs := make([]Pair, 0, len(ds.Records))
	for _, r := range ds.Records {
		pairs = append(pairs, Pair{Key: r.Key, Value: r.Value})
	}
	return pairs
}

// Ensure JSONSerializer implements Serializer.
var _ Serializer = (*JSONSerializer)(nil)

// JSONSerializer exports a dataset as a pretty-printed JSON document.
type JSONSerializer struct{}

func (s *JSONSerializer) Format() Format   { return FormatJSON }
func (s *JSONSerializer) MIMEType() string { return "application/json" }

// Serialize writes {"datasetName": ..., "data": [{"key", "value"}...]}.
func (s *JSONSerializer) Serialize(ds *Dataset) ([]byte, error) {
	doc := struct {
		DatasetName string `json:"datasetName"`
		Data        []Pair `json:"data"`
	}{ds.Name, ds.Pairs()}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Ensure CSVSerializer implements Serializer.
var _ Serializer = (*CSVSerializer)(nil)

// CSVSerializer exports a dataset as delimited text: a dataset header line,
// a column header row, then one row per record with every field quoted.
type CSVSerializer struct{}

func (s *CSVSerializer) Format() Format   { return FormatCSV }
func (s *CSVSerializer) MIMEType() string { return "text/csv" }

// Serialize writes the delimited document.
func (s *CSVSerializer) Serialize(ds *Dataset) ([]byte, error) {
	var b strings.Builder
	b.WriteString("Dataset Name: ")
	b.WriteString(ds.Name)
	b.WriteString("\n\nKey,Value\n")

	rows := make([]string, 0, len(ds.Records))
	for _, r := range ds.Records {
		rows = append(rows, quoteField(r.Key)+","+quoteField(r.Value))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return []byte(b.String()), nil
}

// quoteField wraps s in double quotes, doubling embedded quotes.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
