package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kvdrop"
	"golang.org/x/net/html"
)

// Ensure MarkupParser implements kvdrop.MarkupParser.
var _ kvdrop.MarkupParser = (*MarkupParser)(nil)

// inputSelector matches input-like elements nested inside a label.
const inputSelector = "input, textarea, select"

// MarkupParser parses HTML fragments with goquery.
type MarkupParser struct{}

// NewMarkupParser creates a new MarkupParser.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{}
}

// ParseMarkup parses an HTML fragment. Markup that cannot be parsed yields
// an empty tree.
func (p *MarkupParser) ParseMarkup(markup string) kvdrop.MarkupTree {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return &tree{}
	}
	return &tree{doc: doc}
}

// tree implements kvdrop.MarkupTree over a goquery document.
type tree struct {
	doc *goquery.Document
}

func (t *tree) Labels() []kvdrop.Label {
	if t.doc == nil {
		return nil
	}
	var labels []kvdrop.Label
	t.doc.Find("label").Each(func(_ int, sel *goquery.Selection) {
		labels = append(labels, &label{sel: sel})
	})
	return labels
}

func (t *tree) ElementByID(id string) (kvdrop.Input, bool) {
	if t.doc == nil {
		return nil, false
	}
	// Compare attributes directly so ids never need selector escaping.
	sel := t.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &input{sel: sel}, true
}

// label implements kvdrop.Label.
type label struct {
	sel *goquery.Selection
}

func (l *label) For() (string, bool) {
	v, ok := l.sel.Attr("for")
	return v, ok && v != ""
}

func (l *label) Text() string {
	return l.sel.Text()
}

func (l *label) LeadingText() (string, bool) {
	if len(l.sel.Nodes) == 0 {
		return "", false
	}
	first := l.sel.Nodes[0].FirstChild
	if first == nil || first.Type != html.TextNode {
		return "", false
	}
	return first.Data, true
}

func (l *label) Input() (kvdrop.Input, bool) {
	sel := l.sel.Find(inputSelector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &input{sel: sel}, true
}

// input implements kvdrop.Input. A static document has no user edits, so
// the live value is what a browser would report right after parsing.
type input struct {
	sel *goquery.Selection
}

func (i *input) Value() (string, bool) {
	switch goquery.NodeName(i.sel) {
	case "input":
		if v, ok := i.sel.Attr("value"); ok {
			return v, true
		}
		typ, _ := i.sel.Attr("type")
		switch strings.ToLower(typ) {
		case "checkbox", "radio":
			return "on", true
		}
		return "", true
	case "textarea":
		return i.sel.Text(), true
	case "select":
		return selectValue(i.sel)
	}
	return "", false
}

func (i *input) DefaultValue() (string, bool) {
	return i.sel.Attr("value")
}

// selectValue returns the value of the selected option, or of the first
// option when none is marked selected.
func selectValue(sel *goquery.Selection) (string, bool) {
	options := sel.Find("option")
	if options.Length() == 0 {
		return "", true
	}
	opt := options.FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr("selected")
		return ok
	}).First()
	if opt.Length() == 0 {
		opt = options.First()
	}
	if v, ok := opt.Attr("value"); ok {
		return v, true
	}
	return strings.TrimSpace(opt.Text()), true
}
