package mock

import "github.com/fwojciec/kvdrop"

var _ kvdrop.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of kvdrop.Extractor.
type Extractor struct {
	ExtractFn func(p kvdrop.Payload) (*kvdrop.Extraction, error)
}

func (e *Extractor) Extract(p kvdrop.Payload) (*kvdrop.Extraction, error) {
	return e.ExtractFn(p)
}
