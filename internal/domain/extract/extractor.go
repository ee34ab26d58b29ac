// Package extract pulls ranked (skill, confidence) pairs out of free-form
// document text: CVs and task descriptions. Three independent passes each
// produce partial evidence, merged by a single reducer.
package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"taskmatch/internal/domain/skill"
)

// DefaultMinConfidence is the threshold applied when the caller passes a
// negative or NaN value.
const DefaultMinConfidence = 0.3

const (
	directConfidence        = 0.8
	sectionKnownConfidence  = 0.9
	sectionUnknownConfidence = 0.55
	sectionRepeatBonus      = 0.1
	compoundConfidence      = 0.6

	maxSectionTokens = 25
	sectionWindow    = 500
)

type Extracted struct {
	Name       string
	Confidence float64
}

var surfacePattern = buildSurfacePattern()

// buildSurfacePattern compiles one alternation over every known surface
// form, longest first so longer forms are not shadowed by their substrings.
func buildSurfacePattern() *regexp.Regexp {
	forms := skill.SurfaceForms()
	sort.Slice(forms, func(i, j int) bool {
		if len(forms[i]) != len(forms[j]) {
			return len(forms[i]) > len(forms[j])
		}
		return forms[i] < forms[j]
	})

	quoted := make([]string, 0, len(forms))
	for _, f := range forms {
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}

var sectionHeaderRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)skills?\s*:`),
	regexp.MustCompile(`(?i)technical\s+skills?\s*:`),
	regexp.MustCompile(`(?i)competencies?\s*:`),
	regexp.MustCompile(`(?i)expertise\s*:`),
	regexp.MustCompile(`(?i)technologies?\s*:`),
	regexp.MustCompile(`(?i)tools?\s*:`),
}

var sectionSplitRe = regexp.MustCompile(`[,;\n•\|]`)

var compoundRes = []*regexp.Regexp{
	regexp.MustCompile(`machine\s+learning`),
	regexp.MustCompile(`deep\s+learning`),
	regexp.MustCompile(`artificial\s+intelligence`),
	regexp.MustCompile(`natural\s+language\s+processing`),
	regexp.MustCompile(`data\s+science`),
	regexp.MustCompile(`data\s+analysis`),
	regexp.MustCompile(`data\s+engineering`),
	regexp.MustCompile(`project\s+management`),
	regexp.MustCompile(`stakeholder\s+management`),
	regexp.MustCompile(`unit\s+testing`),
	regexp.MustCompile(`integration\s+testing`),
	regexp.MustCompile(`test\s+automation`),
	regexp.MustCompile(`react\s+native`),
	regexp.MustCompile(`node\.js`),
	regexp.MustCompile(`next\.js`),
	regexp.MustCompile(`nuxt\.js`),
	regexp.MustCompile(`ci/cd`),
	regexp.MustCompile(`ui\s*/\s*ux`),
}

// Extract returns skills found in text, deduplicated by normalized key and
// sorted descending by confidence (ties broken by key). Empty or
// whitespace-only text yields an empty slice; a panic in one pass does not
// abort the others.
func Extract(text string, minConfidence float64) []Extracted {
	if minConfidence < 0 || math.IsNaN(minConfidence) {
		minConfidence = DefaultMinConfidence
	}
	if strings.TrimSpace(text) == "" {
		return []Extracted{}
	}

	lower := strings.ToLower(text)

	direct := runDirectPass(lower)
	sections := runSectionPass(text)
	compounds := runCompoundPass(lower)

	merged := merge(direct, sections, compounds)

	out := make([]Extracted, 0, len(merged))
	for key, ev := range merged {
		conf := math.Min(1.0, ev.confidence)
		if conf < minConfidence {
			continue
		}
		out = append(out, Extracted{Name: skill.DisplayName(key), Confidence: conf})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type evidence struct {
	confidence float64
	count      int
}

type sectionEvidence struct {
	occurrences int
	known       bool
}

func runDirectPass(lower string) (out map[string]int) {
	defer func() {
		if r := recover(); r != nil {
			out = map[string]int{}
		}
	}()
	return directPass(lower)
}

func runSectionPass(text string) (out map[string]sectionEvidence) {
	defer func() {
		if r := recover(); r != nil {
			out = map[string]sectionEvidence{}
		}
	}()
	return sectionPass(text)
}

func runCompoundPass(lower string) (out map[string]struct{}) {
	defer func() {
		if r := recover(); r != nil {
			out = map[string]struct{}{}
		}
	}()
	return compoundPass(lower)
}

// directPass matches the surface-form alternation against the whole text,
// counting occurrences per normalized key. Boundaries are checked manually
// so forms like "c++" and "c#" match despite non-alphanumeric characters.
func directPass(lower string) map[string]int {
	out := map[string]int{}
	for _, loc := range surfacePattern.FindAllStringIndex(lower, -1) {
		if isWordBoundary(lower, loc[0], loc[1]) {
			key := skill.NormalizeKey(lower[loc[0]:loc[1]])
			if key == "" {
				continue
			}
			out[key]++
		}
	}
	return out
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// sectionPass scans for skill-section headers and harvests the comma or
// bullet separated tokens that follow each one. Occurrences count distinct
// raw tokens collapsing to the same key.
func sectionPass(text string) map[string]sectionEvidence {
	tokens := make([]string, 0, maxSectionTokens)
	seen := map[string]struct{}{}

	for _, headerRe := range sectionHeaderRes {
		for _, loc := range headerRe.FindAllStringIndex(text, -1) {
			start := loc[1]
			end := start + sectionWindow
			if end > len(text) {
				end = len(text)
			}
			for _, item := range sectionSplitRe.Split(text[start:end], -1) {
				item = strings.TrimSpace(item)
				if len(item) <= 2 || len(item) >= 50 {
					continue
				}
				if !hasAlphanumeric(item) {
					continue
				}
				if _, dup := seen[item]; dup {
					continue
				}
				seen[item] = struct{}{}
				tokens = append(tokens, item)
			}
		}
	}

	if len(tokens) > maxSectionTokens {
		tokens = tokens[:maxSectionTokens]
	}

	out := map[string]sectionEvidence{}
	for _, tok := range tokens {
		key := skill.NormalizeKey(tok)
		if key == "" {
			continue
		}
		ev := out[key]
		ev.occurrences++
		ev.known = skill.Known(key)
		out[key] = ev
	}
	return out
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

func compoundPass(lower string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, re := range compoundRes {
		for _, m := range re.FindAllString(lower, -1) {
			key := skill.NormalizeKey(m)
			if key == "" {
				continue
			}
			out[key] = struct{}{}
		}
	}
	return out
}

// merge folds the three partial maps together in a fixed order and applies
// the repetition boost min(0.15, 0.05*(count-1)), capped at 1.0.
func merge(direct map[string]int, sections map[string]sectionEvidence, compounds map[string]struct{}) map[string]evidence {
	out := map[string]evidence{}

	for key, n := range direct {
		out[key] = evidence{confidence: directConfidence, count: n}
	}

	for key, sev := range sections {
		if ev, ok := out[key]; ok {
			ev.count += sev.occurrences
			ev.confidence = math.Min(1.0, ev.confidence+sectionRepeatBonus*float64(sev.occurrences))
			out[key] = ev
			continue
		}
		base := sectionUnknownConfidence
		if sev.known {
			base = sectionKnownConfidence
		}
		conf := math.Min(1.0, base+sectionRepeatBonus*float64(sev.occurrences-1))
		out[key] = evidence{confidence: conf, count: sev.occurrences}
	}

	for key := range compounds {
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = evidence{confidence: compoundConfidence, count: 1}
	}

	for key, ev := range out {
		if ev.count > 1 {
			boost := math.Min(0.15, 0.05*float64(ev.count-1))
			ev.confidence = math.Min(1.0, ev.confidence+boost)
			out[key] = ev
		}
	}
	return out
}
