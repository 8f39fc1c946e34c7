// Package yaml exports datasets as YAML documents.
package yaml

import (
	"github.com/fwojciec/kvdrop"
	"github.com/goccy/go-yaml"
)

// Ensure Serializer implements kvdrop.Serializer.
var _ kvdrop.Serializer = (*Serializer)(nil)

// Serializer writes the same shape as the JSON export.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Format() kvdrop.Format { return kvdrop.FormatYAML }
func (s *Serializer) MIMEType() string      { return "application/yaml" }

// Serialize writes datasetName followed by the ordered key-value pairs.
func (s *Serializer) Serialize(ds *kvdrop.Dataset) ([]byte, error) {
	doc := struct {
		DatasetName string        `yaml:"datasetName"`
		Data        []kvdrop.Pair `yaml:"data"`
	}{ds.Name, ds.Pairs()}
	return yaml.Marshal(doc)
}
