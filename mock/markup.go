package mock

import "github.com/fwojciec/kvdrop"

var _ kvdrop.MarkupParser = (*MarkupParser)(nil)

// MarkupParser is a mock implementation of kvdrop.MarkupParser.
type MarkupParser struct {
	ParseMarkupFn func(markup string) kvdrop.MarkupTree
}

func (p *MarkupParser) ParseMarkup(markup string) kvdrop.MarkupTree {
	return p.ParseMarkupFn(markup)
}

var _ kvdrop.MarkupTree = (*MarkupTree)(nil)

// MarkupTree is a static kvdrop.MarkupTree.
type MarkupTree struct {
	LabelList []kvdrop.Label
	IDs       map[string]kvdrop.Input
}

func (t *MarkupTree) Labels() []kvdrop.Label {
	return t.LabelList
}

func (t *MarkupTree) ElementByID(id string) (kvdrop.Input, bool) {
	in, ok := t.IDs[id]
	return in, ok
}

var _ kvdrop.Label = (*Label)(nil)

// Label is a static kvdrop.Label. Nil fields are reported as absent.
type Label struct {
	ForID   *string
	Content string
	Leading *string
	Nested  kvdrop.Input
}

func (l *Label) For() (string, bool) {
	if l.ForID == nil || *l.ForID == "" {
		return "", false
	}
	return *l.ForID, true
}

func (l *Label) Text() string {
	return l.Content
}

func (l *Label) LeadingText() (string, bool) {
	if l.Leading == nil {
		return "", false
	}
	return *l.Leading, true
}

func (l *Label) Input() (kvdrop.Input, bool) {
	return l.Nested, l.Nested != nil
}

var _ kvdrop.Input = (*Input)(nil)

// Input is a static kvdrop.Input. Nil fields are reported as absent.
type Input struct {
	Live    *string
	Default *string
}

func (i *Input) Value() (string, bool) {
	if i.Live == nil {
		return "", false
	}
	return *i.Live, true
}

func (i *Input) DefaultValue() (string, bool) {
	if i.Default == nil {
		return "", false
	}
	return *i.Default, true
}
