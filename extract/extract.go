// Package extract implements the drop payload extraction coordinator.
package extract

import (
	"fmt"

	"github.com/fwojciec/kvdrop"
)

// Ensure Coordinator implements kvdrop.Extractor.
var _ kvdrop.Extractor = (*Coordinator)(nil)

// Notice messages shown to the user.
const (
	MsgMalformedStructured = "Failed to parse JSON data."
	MsgNoValidData         = "No valid data to drop."
)

// Coordinator runs the parsers over every representation of a drop payload
// in a fixed order (structured, markup, text) and concatenates the results.
type Coordinator struct {
	// HTML parses text/html markup.
	HTML kvdrop.MarkupParser

	// XHTML parses application/xhtml+xml markup. Falls back to HTML if nil.
	XHTML kvdrop.MarkupParser
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(html, xhtml kvdrop.MarkupParser) *Coordinator {
	return &Coordinator{HTML: html, XHTML: xhtml}
}

// Extract parses the payload. Representations are additive: a payload that
// carries both markup and text yields candidates from both. A malformed
// structured representation is reported as a notice and treated as empty.
// Returns ENODATA, along with the extraction notices, when nothing usable
// was found.
func (c *Coordinator) Extract(p kvdrop.Payload) (*kvdrop.Extraction, error) {
	ext := &kvdrop.Extraction{}

	if p.Structured != "" {
		candidates, err := kvdrop.NormalizeStructured(p.Structured)
		if err != nil {
			if kvdrop.ErrorCode(err) != kvdrop.EMALFORMED {
				return nil, err
			}
			ext.Notices = append(ext.Notices, kvdrop.Notice{
				Severity: kvdrop.SeverityError,
				Message:  MsgMalformedStructured,
			})
		}
		if n := countIncomplete(candidates); n > 0 {
			ext.Notices = append(ext.Notices, kvdrop.Notice{
				Severity: kvdrop.SeverityInfo,
				Message:  fmt.Sprintf("%d structured item(s) missing a key or value; stored as empty.", n),
			})
		}
		ext.Candidates = append(ext.Candidates, candidates...)
	}

	if p.Markup != "" {
		if parser := c.markupParser(p.MarkupType); parser != nil {
			ext.Candidates = append(ext.Candidates, kvdrop.ExtractMarkupPairs(parser.ParseMarkup(p.Markup))...)
		}
	}

	if p.Text != "" {
		ext.Candidates = append(ext.Candidates, kvdrop.ParseTextPairs(p.Text)...)
	}

	if len(ext.Candidates) == 0 {
		ext.Notices = append(ext.Notices, kvdrop.Notice{
			Severity: kvdrop.SeverityError,
			Message:  MsgNoValidData,
		})
		return ext, kvdrop.Errorf(kvdrop.ENODATA, MsgNoValidData)
	}

	return ext, nil
}

func (c *Coordinator) markupParser(contentType string) kvdrop.MarkupParser {
	if contentType == kvdrop.ContentTypeXHTML && c.XHTML != nil {
		return c.XHTML
	}
	return c.HTML
}

func countIncomplete(candidates []kvdrop.Candidate) int {
	var n int
	for i := range candidates {
		if !candidates[i].Complete() {
			n++
		}
	}
	return n
}
