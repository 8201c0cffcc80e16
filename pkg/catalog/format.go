package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"workflow-hub-be/internal/entity"
)

// Flatten renders the catalog as plain text for a system prompt, one block per workflow.
func Flatten(workflows []*entity.Workflow) string {
	if len(workflows) == 0 {
		return "(the catalog is currently empty)"
	}

	var b strings.Builder
	for i, w := range workflows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- Name: %s\n", w.Name)
		fmt.Fprintf(&b, "  Description: %s\n", w.Description)
		fmt.Fprintf(&b, "  URL: %s\n", w.Url)
		fmt.Fprintf(&b, "  Pricing: %s\n", w.PaidOrFree)
		if slug := w.CategorySlug(); slug != "" {
			fmt.Fprintf(&b, "  Category: %s\n", CategoryName(slug))
		}
		if w.CreatorName != "" {
			fmt.Fprintf(&b, "  Creator: %s\n", w.CreatorName)
		}
	}
	return b.String()
}

// CategoryName derives a display name from a slug: "email-automation" -> "Email Automation".
// Slugs given as full URLs use their last path segment.
func CategoryName(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if i := strings.LastIndex(slug, "/"); i >= 0 {
		slug = slug[i+1:]
	}

	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
