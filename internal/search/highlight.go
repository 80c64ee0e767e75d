package search

import (
	"regexp"
	"strings"
)

// DefaultHighlightColor is used when Highlight is given no color.
const DefaultHighlightColor = "#FFEB3B"

const highlightClass = "search-highlight"

// colorPattern accepts hex colors (#rgb, #rgba, #rrggbb, #rrggbbaa) and
// named colors. Nothing it accepts can leave the style attribute.
var colorPattern = regexp.MustCompile(`^(#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]{3,32})$`)

// SafeColor returns the trimmed color when it is a hex or named color and
// DefaultHighlightColor otherwise.
func SafeColor(color string) string {
	if c := strings.TrimSpace(color); colorPattern.MatchString(c) {
		return c
	}
	return DefaultHighlightColor
}

// Span is a half-open byte range [Start, End) of the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// HighlightSpans locates every occurrence of the normalized query inside the
// normalized text and maps each one back to the original text. Occurrences
// are found one rune apart, so overlapping matches are all reported; spans
// that overlap in the original text are merged. Spans are sorted.
func HighlightSpans(text, query string) []Span {
	if text == "" || query == "" {
		return nil
	}
	needle := []rune(Normalize(query))
	if len(needle) == 0 {
		return nil
	}
	m := normalizeMapped(text)
	hay := m.runes

	var spans []Span
	for i := 0; i+len(needle) <= len(hay); i++ {
		if !runesEqual(hay[i:i+len(needle)], needle) {
			continue
		}
		sp := Span{Start: m.start[i], End: m.end[i+len(needle)-1]}
		if n := len(spans); n > 0 && sp.Start < spans[n-1].End {
			if sp.End > spans[n-1].End {
				spans[n-1].End = sp.End
			}
			continue
		}
		spans = append(spans, sp)
	}
	return spans
}

// Highlight wraps every occurrence of query in text with a <mark> element
// carrying color. A color SafeColor rejects is replaced by the default. Matching is accent- and case-insensitive while the marked
// text is the original. Text is not escaped, so removing the markers always
// yields the input unchanged.
func Highlight(text, query, color string) string {
	spans := HighlightSpans(text, query)
	if len(spans) == 0 {
		return text
	}
	open := `<mark class="` + highlightClass + `" style="background-color: ` + SafeColor(color) + `">`
	const closeTag = `</mark>`

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(open)+len(closeTag)))
	last := 0
	for _, sp := range spans {
		b.WriteString(text[last:sp.Start])
		b.WriteString(open)
		b.WriteString(text[sp.Start:sp.End])
		b.WriteString(closeTag)
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String()
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
