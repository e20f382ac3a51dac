package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// stripDiacritics removes combining marks and maps the Vietnamese đ/Đ, which
// NFD leaves intact because it is a distinct letter rather than a composed one.
func stripDiacritics(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// collapseToHyphens replaces every run of non-alphanumeric characters with a
// single hyphen and trims hyphens from both ends.
func collapseToHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SKUFragment normalizes an option-value label into an uppercase SKU suffix
// fragment: diacritics stripped, non-alphanumerics collapsed to single
// hyphens, trimmed.
func SKUFragment(label string) string {
	return strings.ToUpper(collapseToHyphens(stripDiacritics(label)))
}

// Slugify turns a human label into a lowercase URL/key slug. Used for product
// slugs, category slugs, and option-group keys.
func Slugify(label string) string {
	return strings.ToLower(collapseToHyphens(stripDiacritics(label)))
}
