// Package linkparser pulls workflow links out of assistant replies so the
// client can render them as buttons.
package linkparser

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

type Link struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

var (
	urlPattern     = regexp.MustCompile(`https?://[^\s<>()\[\]"'` + "`" + `]+`)
	boldPattern    = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	bracketPattern = regexp.MustCompile(`\[([^\]\n]+)\]`)
)

const trailingPunctuation = ".,;:!?*_"

// Extract returns every distinct URL in text, in order of appearance. Each URL
// is labelled with the closest **bold** or [bracket] span written after the
// previous URL; without one the label comes from the last path segment.
func Extract(text string) []Link {
	matches := urlPattern.FindAllStringIndex(text, -1)
	links := make([]Link, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	prevEnd := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		raw := strings.TrimRight(text[start:end], trailingPunctuation)

		region := text[prevEnd:start]
		prevEnd = end

		if raw == "" || seen[raw] {
			continue
		}
		seen[raw] = true

		label := nearestSpan(region)
		if label == "" {
			label = LabelFromURL(raw)
		}
		links = append(links, Link{URL: raw, Label: label})
	}

	return links
}

// nearestSpan returns the inner text of the bold/bracket span that ends last in region.
func nearestSpan(region string) string {
	bestEnd := -1
	best := ""

	for _, p := range []*regexp.Regexp{boldPattern, bracketPattern} {
		for _, m := range p.FindAllStringSubmatchIndex(region, -1) {
			inner := strings.TrimSpace(region[m[2]:m[3]])
			if inner == "" || urlPattern.MatchString(inner) {
				continue
			}
			if m[1] > bestEnd {
				bestEnd = m[1]
				best = inner
			}
		}
	}

	return strings.Trim(best, "*_ ")
}

// LabelFromURL title-cases the last path segment: ".../email-parser-123" -> "Email Parser 123".
func LabelFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	segment := ""
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			segment = part
		}
	}
	if segment == "" {
		return strings.TrimPrefix(u.Host, "www.")
	}

	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}

	words := strings.FieldsFunc(segment, func(r rune) bool {
		return r == '-' || r == '_' || r == '+' || unicode.IsSpace(r)
	})
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
