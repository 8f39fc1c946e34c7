package kvdrop

import "strings"

// ParseTextPairs splits delimited plain text into key-value candidates.
// Each line is split on its first colon; both sides are trimmed and lines
// with no colon or an empty side are dropped. Output follows line order.
func ParseTextPairs(text string) []Candidate {
	var candidates []Candidate
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		candidates = append(candidates, Candidate{Key: key, Value: value})
	}
	return candidates
}
