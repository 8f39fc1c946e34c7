package kvdrop

// Conventional content identifiers offered by a drop.
const (
	ContentTypeJSON  = "application/json"
	ContentTypeHTML  = "text/html"
	ContentTypeXHTML = "application/xhtml+xml"
	ContentTypeText  = "text/plain"
)

// Payload bundles the alternative representations of a single drop.
// An empty string means the representation is absent.
type Payload struct {
	Structured string
	Markup     string
	MarkupType string // ContentTypeHTML when empty
	Text       string
}

// NewPayload builds a Payload from representations keyed by content type.
// HTML wins over XHTML when both are offered. Unknown content types are ignored.
func NewPayload(data map[string]string) Payload {
	p := Payload{
		Structured: data[ContentTypeJSON],
		Text:       data[ContentTypeText],
	}
	if html := data[ContentTypeHTML]; html != "" {
		p.Markup, p.MarkupType = html, ContentTypeHTML
	} else if xhtml := data[ContentTypeXHTML]; xhtml != "" {
		p.Markup, p.MarkupType = xhtml, ContentTypeXHTML
	}
	return p
}

// IsEmpty reports whether no representation is present.
func (p Payload) IsEmpty() bool {
	return p.Structured == "" && p.Markup == "" && p.Text == ""
}

// Severity classifies a user-visible notice.
type Severity string

// Notice severities.
const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// Notice is an advisory, dismissible message for the user.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Extraction is the result of processing a single Payload.
type Extraction struct {
	// Candidates in precedence order: structured, then markup, then text.
	Candidates []Candidate

	// Notices raised while parsing individual representations.
	Notices []Notice
}

// Extractor converts a drop payload into candidate records.
type Extractor interface {
	// Extract parses every representation present in the payload.
	// Returns ENODATA when no representation yields a candidate; the
	// returned Extraction still carries any notices in that case.
	Extract(p Payload) (*Extraction, error)
}
