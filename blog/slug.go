package blog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFolder strips combining marks after canonical decomposition, turning
// ğ/ü/ş/ö/ç and friends into their base letters.
var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Dotless ı never decomposes, so it needs an explicit mapping.
var slugReplacer = strings.NewReplacer("ı", "i", "æ", "ae", "ø", "o", "ß", "ss")

// DeriveSlug turns a post title into a URL-safe slug: lowercase, diacritics
// folded, non-alphanumeric runs collapsed to a single hyphen, no leading or
// trailing hyphen.
func DeriveSlug(title string) string {
	folded, _, err := transform.String(slugFolder, title)
	if err != nil {
		folded = title
	}
	folded = slugReplacer.Replace(strings.ToLower(folded))

	var b strings.Builder
	hyphen := false
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
