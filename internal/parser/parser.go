// Package parser holds the CV detail heuristics that run over extracted
// document text: candidate name, email and role lines for form pre-fill,
// plus the text cleaner shared with the role classifier.
package parser

import (
	"regexp"
	"strings"
)

type Details struct {
	Name  string
	Email string
	Role  string
}

var emailRe = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)

var roleKeywords = []string{
	"engineer", "developer", "designer", "manager", "analyst", "architect",
	"consultant", "scientist", "administrator", "specialist", "lead",
	"tester", "devops",
}

// ExtractDetails pulls name/email/role candidates from the first lines of
// a document. Best effort: empty fields mean nothing plausible was found.
func ExtractDetails(text string) Details {
	d := Details{}
	if strings.TrimSpace(text) == "" {
		return d
	}

	d.Email = emailRe.FindString(text)

	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 15 {
		limit = 15
	}

	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 80 {
			continue
		}

		if d.Role == "" && looksLikeRole(line) {
			d.Role = line
			continue
		}
		if d.Name == "" && looksLikeName(line) {
			d.Name = line
		}
	}
	return d
}

func looksLikeRole(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "@") {
		return false
	}
	words := strings.Fields(lower)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	for _, kw := range roleKeywords {
		for _, w := range words {
			if strings.Trim(w, ".,()") == kw {
				return true
			}
		}
	}
	return false
}

func looksLikeName(line string) bool {
	if strings.ContainsAny(line, "@0123456789:/") {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		for _, r := range w {
			if !isLetter(r) && r != '-' && r != '\'' && r != '.' {
				return false
			}
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}
