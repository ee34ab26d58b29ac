package parser

import (
	"regexp"
	"strings"
)

// Replacements applied before tokenization so key tech terms survive the
// classifier's word splitting.
var tokenReplacements = []struct {
	src, dst string
}{
	{"c++", "cplusplus"},
	{"c#", "csharp"},
	{"asp.net", "aspnet"},
	{".net", "dotnet"},
	{"node.js", "nodejs"},
	{"react.js", "reactjs"},
	{"vue.js", "vuejs"},
	{"next.js", "nextjs"},
	{"nuxt.js", "nuxtjs"},
	{"ci/cd", "cicd"},
	{"ci-cd", "cicd"},
}

var (
	urlRe     = regexp.MustCompile(`http\S+\s*`)
	mentionRe = regexp.MustCompile(`@[^\s]+`)
	hashtagRe = regexp.MustCompile(`#\S+`)
	fillerRe  = regexp.MustCompile(`\brt\b|\bcc\b`)
	blanksRe  = regexp.MustCompile(`\s+`)
)

// CleanText normalizes document text for the role classifier: lowercase,
// tech-token replacements, strip URLs/mentions/hashtags, collapse blanks.
func CleanText(text string) string {
	s := strings.ToLower(text)

	for _, r := range tokenReplacements {
		s = strings.ReplaceAll(s, r.src, r.dst)
	}

	s = urlRe.ReplaceAllString(s, " ")
	s = mentionRe.ReplaceAllString(s, " ")
	s = hashtagRe.ReplaceAllString(s, " ")
	s = fillerRe.ReplaceAllString(s, " ")
	s = blanksRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
