// Package etree provides a markup parser for XHTML and XML form fragments.
package etree

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/kvdrop"
)

// Ensure MarkupParser implements kvdrop.MarkupParser.
var _ kvdrop.MarkupParser = (*MarkupParser)(nil)

// xmlDeclRe matches a leading XML declaration, which cannot be wrapped.
var xmlDeclRe = regexp.MustCompile(`^\s*<\?xml[^>]*\?>`)

// MarkupParser parses XHTML fragments with etree.
type MarkupParser struct{}

// NewMarkupParser creates a new MarkupParser.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{}
}

// ParseMarkup parses an XHTML fragment. Fragments with several top-level
// elements are wrapped in a synthetic root. Markup that cannot be parsed
// yields an empty tree.
func (p *MarkupParser) ParseMarkup(markup string) kvdrop.MarkupTree {
	if root := parse(markup); root != nil {
		return &tree{root: root}
	}
	wrapped := "<fragment>" + xmlDeclRe.ReplaceAllString(markup, "") + "</fragment>"
	if root := parse(wrapped); root != nil {
		return &tree{root: root}
	}
	return &tree{}
}

func parse(markup string) *etree.Element {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromString(markup); err != nil {
		return nil
	}
	// A document with more than one top-level element is not a single tree.
	if len(doc.ChildElements()) != 1 {
		return nil
	}
	return doc.Root()
}

// tree implements kvdrop.MarkupTree over an etree element.
type tree struct {
	root *etree.Element
}

func (t *tree) Labels() []kvdrop.Label {
	var labels []kvdrop.Label
	walk(t.root, func(e *etree.Element) bool {
		if isTag(e, "label") {
			labels = append(labels, &label{el: e})
		}
		return false
	})
	return labels
}

func (t *tree) ElementByID(id string) (kvdrop.Input, bool) {
	var found *etree.Element
	walk(t.root, func(e *etree.Element) bool {
		if attr := e.SelectAttr("id"); attr != nil && attr.Value == id {
			found = e
			return true
		}
		return false
	})
	if found == nil {
		return nil, false
	}
	return &input{el: found}, true
}

// label implements kvdrop.Label.
type label struct {
	el *etree.Element
}

func (l *label) For() (string, bool) {
	attr := l.el.SelectAttr("for")
	if attr == nil || attr.Value == "" {
		return "", false
	}
	return attr.Value, true
}

func (l *label) Text() string {
	return textContent(l.el)
}

func (l *label) LeadingText() (string, bool) {
	if len(l.el.Child) == 0 {
		return "", false
	}
	if cd, ok := l.el.Child[0].(*etree.CharData); ok {
		return cd.Data, true
	}
	return "", false
}

func (l *label) Input() (kvdrop.Input, bool) {
	var found *etree.Element
	for _, child := range l.el.ChildElements() {
		walk(child, func(e *etree.Element) bool {
			if isTag(e, "input") || isTag(e, "textarea") || isTag(e, "select") {
				found = e
				return true
			}
			return false
		})
		if found != nil {
			return &input{el: found}, true
		}
	}
	return nil, false
}

// input implements kvdrop.Input.
type input struct {
	el *etree.Element
}

func (i *input) Value() (string, bool) {
	switch {
	case isTag(i.el, "input"):
		if attr := i.el.SelectAttr("value"); attr != nil {
			return attr.Value, true
		}
		switch strings.ToLower(i.el.SelectAttrValue("type", "")) {
		case "checkbox", "radio":
			return "on", true
		}
		return "", true
	case isTag(i.el, "textarea"):
		return textContent(i.el), true
	case isTag(i.el, "select"):
		return selectValue(i.el), true
	}
	return "", false
}

func (i *input) DefaultValue() (string, bool) {
	if attr := i.el.SelectAttr("value"); attr != nil {
		return attr.Value, true
	}
	return "", false
}

// selectValue returns the selected option's value, or the first option's.
func selectValue(sel *etree.Element) string {
	var options []*etree.Element
	walk(sel, func(e *etree.Element) bool {
		if isTag(e, "option") {
			options = append(options, e)
		}
		return false
	})
	if len(options) == 0 {
		return ""
	}
	opt := options[0]
	for _, o := range options {
		if o.SelectAttr("selected") != nil {
			opt = o
			break
		}
	}
	if attr := opt.SelectAttr("value"); attr != nil {
		return attr.Value
	}
	return strings.TrimSpace(textContent(opt))
}

// walk visits e and its descendants depth-first in document order until
// visit returns true.
func walk(e *etree.Element, visit func(*etree.Element) bool) bool {
	if e == nil {
		return false
	}
	if visit(e) {
		return true
	}
	for _, child := range e.ChildElements() {
		if walk(child, visit) {
			return true
		}
	}
	return false
}

// textContent concatenates all character data below e.
func textContent(e *etree.Element) string {
	var b strings.Builder
	var collect func(*etree.Element)
	collect = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				collect(t)
			}
		}
	}
	collect(e)
	return b.String()
}

func isTag(e *etree.Element, name string) bool {
	return strings.EqualFold(e.Tag, name)
}
