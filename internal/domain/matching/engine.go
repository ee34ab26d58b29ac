// Package matching scores employees against task requirements and ranks
// candidates for assignment. Everything here is pure and safe for
// concurrent use: inputs are caller-supplied, tables are immutable.
package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"taskmatch/internal/domain/skill"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Weights blend the four sub-scores; each row sums to 1.0.
type Weights struct {
	Skill      float64
	Coverage   float64
	Experience float64
	Workload   float64
}

var priorityWeights = map[Priority]Weights{
	PriorityHigh:   {Skill: 0.60, Coverage: 0.15, Experience: 0.15, Workload: 0.10},
	PriorityMedium: {Skill: 0.55, Coverage: 0.15, Experience: 0.10, Workload: 0.20},
	PriorityLow:    {Skill: 0.45, Coverage: 0.15, Experience: 0.10, Workload: 0.30},
}

// WeightsFor returns the weight row for a priority; unknown or missing
// priorities fall back to MEDIUM.
func WeightsFor(p Priority) Weights {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[PriorityMedium]
}

// DefaultFuzzyOverlapThreshold is the token-overlap cutoff for fuzzy skill
// matching. Tuned constant, configurable via Params.
const DefaultFuzzyOverlapThreshold = 0.34

type Params struct {
	FuzzyOverlapThreshold float64
}

func DefaultParams() Params {
	return Params{FuzzyOverlapThreshold: DefaultFuzzyOverlapThreshold}
}

func (p Params) threshold() float64 {
	if p.FuzzyOverlapThreshold <= 0 || p.FuzzyOverlapThreshold > 1 {
		return DefaultFuzzyOverlapThreshold
	}
	return p.FuzzyOverlapThreshold
}

// Profile maps normalized skill keys to confidence in [0,1].
type Profile map[string]float64

// Record is one stored skill entry for an employee.
type Record struct {
	Name       string
	Confidence float64
	Manual     bool
}

// BuildProfile derives a skill profile from records: names normalized to
// keys, manual entries floored at 0.9, max confidence kept on collisions.
func BuildProfile(records []Record) Profile {
	p := make(Profile, len(records))
	for _, r := range records {
		key := skill.NormalizeKey(r.Name)
		if key == "" {
			continue
		}
		conf := clamp01(r.Confidence)
		if r.Manual && conf < 0.9 {
			conf = 0.9
		}
		if existing, ok := p[key]; !ok || conf > existing {
			p[key] = conf
		}
	}
	return p
}

// Task carries the scoring-relevant slice of a task.
type Task struct {
	RequiredSkills []string
	Priority       Priority
}

// Candidate is one employee considered for a task.
type Candidate struct {
	EmployeeID  uuid.UUID
	Profile     Profile
	WorkloadPct float64
}

// MatchResult is the transient ranking output for one employee.
type MatchResult struct {
	EmployeeID     uuid.UUID
	Score          float64
	MatchingSkills []string
	WorkloadPct    float64
}

// Score computes the 0-100 suitability of a profile for a task. A task
// with no required skills scores on workload availability alone.
func Score(profile Profile, task Task, workloadPct float64, params Params) float64 {
	wScore := workloadScore(workloadPct)

	if len(task.RequiredSkills) == 0 {
		return round2(wScore * 100)
	}

	matches := evaluateRequirements(profile, task.RequiredSkills, params)

	w := WeightsFor(task.Priority)
	total := w.Skill*skillMatchScore(matches) +
		w.Coverage*coverageScore(matches) +
		w.Experience*experienceScore(matches) +
		w.Workload*wScore

	return round2(clamp01(total) * 100)
}

// Rank scores every candidate, drops those below minScore, sorts
// descending (stable, ties keep candidate order) and truncates to limit.
func Rank(task Task, candidates []Candidate, limit int, minScore float64, params Params) []MatchResult {
	if math.IsNaN(minScore) || minScore < 0 {
		minScore = 0
	}

	out := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		s := Score(c.Profile, task, c.WorkloadPct, params)
		if s < minScore {
			continue
		}
		out = append(out, MatchResult{
			EmployeeID:     c.EmployeeID,
			Score:          s,
			MatchingSkills: matchingSkills(c.Profile, task.RequiredSkills, params),
			WorkloadPct:    c.WorkloadPct,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matchingSkills lists the display-formatted required skills whose match
// value against the profile reaches 0.5.
func matchingSkills(profile Profile, required []string, params Params) []string {
	out := make([]string, 0, len(required))
	for _, raw := range required {
		m := evaluateOne(profile, raw, params)
		if m.value >= 0.5 {
			out = append(out, skill.DisplayName(raw))
		}
	}
	return out
}

// requirementMatch is the per-required-skill evaluation shared by the
// skill, coverage and experience sub-scores.
type requirementMatch struct {
	value      float64
	confidence float64
	matched    bool
}

func evaluateRequirements(profile Profile, required []string, params Params) []requirementMatch {
	out := make([]requirementMatch, 0, len(required))
	for _, raw := range required {
		out = append(out, evaluateOne(profile, raw, params))
	}
	return out
}

func evaluateOne(profile Profile, raw string, params Params) requirementMatch {
	key := skill.NormalizeKey(raw)
	if key == "" {
		return requirementMatch{}
	}

	// Alias resolution first: an exact key hit always wins over fuzzy
	// token overlap.
	if conf, ok := profile[key]; ok {
		return requirementMatch{
			value:      0.45 + 0.55*conf,
			confidence: conf,
			matched:    true,
		}
	}

	reqTokens := tokenize(key)
	if len(reqTokens) == 0 {
		return requirementMatch{}
	}

	threshold := params.threshold()
	best := requirementMatch{}
	for profKey, conf := range profile {
		overlap := jaccard(reqTokens, tokenize(profKey))
		if overlap < threshold {
			continue
		}
		v := (0.5 + 0.5*overlap) * (0.3 + 0.7*conf)
		if v > best.value {
			best = requirementMatch{value: v, confidence: conf, matched: true}
		}
	}
	return best
}

func skillMatchScore(matches []requirementMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range matches {
		sum += m.value
	}
	return clamp01(sum / float64(len(matches)))
}

func coverageScore(matches []requirementMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	hits := 0
	for _, m := range matches {
		if m.value >= 0.5 {
			hits++
		}
	}
	return float64(hits) / float64(len(matches))
}

func experienceScore(matches []requirementMatch) float64 {
	if len(matches) == 0 {
		return 0.5
	}
	sum := 0.0
	n := 0
	for _, m := range matches {
		if m.matched {
			sum += m.confidence
			n++
		}
	}
	if n == 0 {
		return 0.3
	}
	return clamp01(sum / float64(n))
}

// workloadScore inverts the workload percentage into availability and
// applies a penalty multiplier near capacity.
func workloadScore(workloadPct float64) float64 {
	if math.IsNaN(workloadPct) || workloadPct < 0 {
		workloadPct = 0
	}
	if workloadPct > 100 {
		workloadPct = 100
	}

	s := 1.0 - workloadPct/100.0
	switch {
	case workloadPct >= 90:
		s *= 0.7
	case workloadPct >= 80:
		s *= 0.85
	}
	return clamp01(s)
}

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(key string) []string {
	parts := tokenSplitRe.Split(strings.ToLower(key), -1)
	out := parts[:0]
	for _, p := range parts {
		if len(p) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
