package skill

import (
	"regexp"
	"strings"
)

var (
	bracketsRe   = regexp.MustCompile(`[()\[\]{}]`)
	underscoreRe = regexp.MustCompile(`_+`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// NormalizeKey canonicalizes a raw skill string into its stable key.
// Alias resolution is many-to-one ("nodejs", "node js" -> "node.js").
// Idempotent: NormalizeKey(NormalizeKey(x)) == NormalizeKey(x).
func NormalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}

	key = strings.ReplaceAll(key, "&", "and")
	key = bracketsRe.ReplaceAllString(key, " ")
	key = underscoreRe.ReplaceAllString(key, " ")
	key = strings.TrimSpace(spacesRe.ReplaceAllString(key, " "))
	key = strings.ReplaceAll(key, " / ", "/")

	if target, ok := Aliases[key]; ok {
		return target
	}
	return key
}

// DisplayName formats a raw skill string for UI display: canonical casing
// when the key is in the display table, otherwise per-word capitalization
// with known acronyms upper-cased.
func DisplayName(raw string) string {
	key := NormalizeKey(raw)
	if key == "" {
		return ""
	}

	if display, ok := DisplayNames[key]; ok {
		return display
	}

	parts := strings.Split(key, " ")
	for i, p := range parts {
		if _, ok := Acronyms[p]; ok {
			parts[i] = strings.ToUpper(p)
			continue
		}
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
