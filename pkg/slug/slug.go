package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name. Common accented
// characters are transliterated to ASCII equivalents.
//
// Examples:
//   - "Crème Brûlée Maker" → "creme-brulee-maker"
//   - "Hello   World!" → "hello-world"
func Generate(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))

	replacer := strings.NewReplacer(
		"à", "a", "á", "a", "â", "a", "ä", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "î", "i", "ï", "i",
		"ò", "o", "ó", "o", "ô", "o", "ö", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ç", "c", "ñ", "n", "ş", "s", "ğ", "g", "ı", "i",
	)
	slug = replacer.Replace(slug)

	slug = slugRegexp.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}
