package parser

import "strings"

// RolePredictor is the fallback used when no role line is found in the
// document. The trained classifier lives outside this service; anything
// that maps cleaned text to a role label can be plugged in.
type RolePredictor interface {
	PredictRole(cleanedText string) (string, bool)
}

// KeywordPredictor is the built-in fallback: counts role-family keyword
// hits in the cleaned text and returns the label with the most evidence.
type KeywordPredictor struct{}

var roleFamilies = []struct {
	label    string
	keywords []string
}{
	{"Backend Developer", []string{"backend", "api", "server", "database", "microservices", "golang", "django", "spring"}},
	{"Frontend Developer", []string{"frontend", "react", "vue", "angular", "css", "html", "javascript", "ui"}},
	{"Data Scientist", []string{"machine learning", "pandas", "numpy", "tensorflow", "pytorch", "statistics", "model"}},
	{"DevOps Engineer", []string{"kubernetes", "docker", "terraform", "cicd", "ansible", "infrastructure", "deployment"}},
	{"QA Engineer", []string{"testing", "selenium", "cypress", "test automation", "quality assurance"}},
	{"Project Manager", []string{"project management", "stakeholder", "scrum", "roadmap", "agile", "kanban"}},
	{"UI/UX Designer", []string{"figma", "sketch", "wireframe", "prototype", "user research", "usability"}},
}

func (KeywordPredictor) PredictRole(cleanedText string) (string, bool) {
	if strings.TrimSpace(cleanedText) == "" {
		return "", false
	}

	bestLabel := ""
	bestHits := 0
	for _, fam := range roleFamilies {
		hits := 0
		for _, kw := range fam.keywords {
			hits += strings.Count(cleanedText, kw)
		}
		if hits > bestHits {
			bestHits = hits
			bestLabel = fam.label
		}
	}

	if bestHits < 2 {
		return "", false
	}
	return bestLabel, true
}
