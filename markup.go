package kvdrop

import "strings"

// MarkupParser parses a markup fragment into a tree of labels and inputs.
type MarkupParser interface {
	// ParseMarkup never fails: malformed or empty markup yields a tree
	// without labels.
	ParseMarkup(markup string) MarkupTree
}

// MarkupTree is the view of a parsed markup fragment needed to pair labels
// with the inputs they describe.
type MarkupTree interface {
	// Labels returns every label-like element in document order.
	Labels() []Label

	// ElementByID returns the element carrying the given id, if any.
	ElementByID(id string) (Input, bool)
}

// Label is an element that semantically labels an input-like element.
type Label interface {
	// For returns the id referenced by the label. An empty reference is
	// reported as absent.
	For() (string, bool)

	// Text returns the full text content of the label.
	Text() string

	// LeadingText returns the label's first child node when it is a text node.
	LeadingText() (string, bool)

	// Input returns the first input-like element nested inside the label.
	Input() (Input, bool)
}

// Input is an element carrying a value.
type Input interface {
	// Value returns the element's live value state.
	Value() (string, bool)

	// DefaultValue returns the declared value attribute.
	DefaultValue() (string, bool)
}

// ExtractMarkupPairs pairs every label in the tree with its input and
// returns the resulting candidates in document order. Labels that cannot be
// resolved, or that resolve to an empty key or value, are skipped.
func ExtractMarkupPairs(tree MarkupTree) []Candidate {
	if tree == nil {
		return nil
	}

	var candidates []Candidate
	for _, label := range tree.Labels() {
		var key string
		var input Input

		if id, ok := label.For(); ok {
			el, found := tree.ElementByID(id)
			if !found {
				continue
			}
			key, input = label.Text(), el
		} else {
			el, found := label.Input()
			if !found {
				continue
			}
			// Only the leading text node, so the nested input's own text
			// does not end up in the key.
			key, _ = label.LeadingText()
			input = el
		}

		key = cleanLabelText(key)
		value := inputValue(input)
		if key == "" || value == "" {
			continue
		}
		candidates = append(candidates, Candidate{Key: key, Value: value})
	}
	return candidates
}

// cleanLabelText trims whitespace and any trailing colons from label text.
func cleanLabelText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":")
	return strings.TrimSpace(s)
}

// inputValue resolves the live value, falling back to the declared default.
func inputValue(input Input) string {
	if v, ok := input.Value(); ok && v != "" {
		return v
	}
	if v, ok := input.DefaultValue(); ok {
		return v
	}
	return ""
}
