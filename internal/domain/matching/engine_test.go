package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildProfile(t *testing.T) {
	p := BuildProfile([]Record{
		{Name: "Python", Confidence: 0.7},
		{Name: "py", Confidence: 0.4},
		{Name: "SQL", Confidence: 0.2, Manual: true},
	})

	if !almostEqual(p["python"], 0.7) {
		t.Errorf("python confidence = %v, want max across colliding records 0.7", p["python"])
	}
	if !almostEqual(p["sql"], 0.9) {
		t.Errorf("manual record confidence = %v, want floor 0.9", p["sql"])
	}
	if len(p) != 2 {
		t.Errorf("expected 2 keys after alias collapse, got %v", p)
	}
}

func TestScore_FullMatchHighPriority(t *testing.T) {
	p := BuildProfile([]Record{
		{Name: "python", Confidence: 0.9, Manual: true},
		{Name: "sql", Confidence: 0.8, Manual: true},
	})
	task := Task{RequiredSkills: []string{"python", "sql"}, Priority: PriorityHigh}

	s := Score(p, task, 0, DefaultParams())
	if s < 90 || s > 100 {
		t.Errorf("full match score = %v, want in [90,100]", s)
	}
}

func TestScore_NoRequiredSkills(t *testing.T) {
	p := Profile{"python": 1.0}

	for _, c := range []struct {
		workload float64
		want     float64
	}{
		{0, 100},
		{40, 60},
		{100, 0},
	} {
		got := Score(p, Task{Priority: PriorityHigh}, c.workload, DefaultParams())
		if !almostEqual(got, c.want) {
			t.Errorf("workload %v: score = %v, want %v (workload score alone)", c.workload, got, c.want)
		}
	}
}

func TestScore_NoMatchingSkillsFloor(t *testing.T) {
	s := Score(Profile{}, Task{RequiredSkills: []string{"python"}, Priority: PriorityMedium}, 0, DefaultParams())
	// 0.55*0 + 0.15*0 + 0.10*0.3 + 0.20*1.0
	if !almostEqual(s, 23.0) {
		t.Errorf("empty profile score = %v, want 23.0", s)
	}
}

func TestScore_UnknownPriorityDefaultsToMedium(t *testing.T) {
	p := Profile{"python": 0.8}
	task := Task{RequiredSkills: []string{"python"}}

	unknown := Score(p, Task{RequiredSkills: task.RequiredSkills, Priority: "URGENT"}, 0, DefaultParams())
	medium := Score(p, Task{RequiredSkills: task.RequiredSkills, Priority: PriorityMedium}, 0, DefaultParams())
	if !almostEqual(unknown, medium) {
		t.Errorf("unknown priority score %v differs from MEDIUM %v", unknown, medium)
	}
}

func TestScore_WorkloadPenalty(t *testing.T) {
	p := Profile{"python": 0.9}
	task := Task{RequiredSkills: []string{"python"}, Priority: PriorityMedium}

	busy := Score(p, task, 95, DefaultParams())
	free := Score(p, task, 50, DefaultParams())
	if busy >= free {
		t.Errorf("95%% workload score %v should be strictly below 50%% workload score %v", busy, free)
	}
}

func TestWorkloadScore_PenaltyBands(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, 1.0},
		{50, 0.5},
		{80, 0.2 * 0.85},
		{90, 0.1 * 0.7},
		{100, 0},
		{150, 0},
		{-10, 1.0},
	}
	for _, c := range cases {
		if got := workloadScore(c.pct); !almostEqual(got, c.want) {
			t.Errorf("workloadScore(%v) = %v, want %v", c.pct, got, c.want)
		}
	}
}

func TestEvaluateOne_AliasBeatsFuzzy(t *testing.T) {
	p := Profile{"react": 0.6}
	m := evaluateOne(p, "reactjs", DefaultParams())
	if !m.matched {
		t.Fatal("expected a match")
	}
	// Exact branch: 0.45 + 0.55*0.6.
	if !almostEqual(m.value, 0.78) {
		t.Errorf("alias-resolved requirement scored %v, want exact-branch 0.78", m.value)
	}
}

func TestEvaluateOne_FuzzyTokenOverlap(t *testing.T) {
	p := Profile{"machine learning engineering": 1.0}
	m := evaluateOne(p, "machine learning", DefaultParams())
	if !m.matched {
		t.Fatal("expected fuzzy match")
	}
	// Overlap 2/3; value (0.5+0.5*2/3)*(0.3+0.7*1.0).
	want := (0.5 + 0.5*2.0/3.0) * 1.0
	if !almostEqual(m.value, want) {
		t.Errorf("fuzzy value = %v, want %v", m.value, want)
	}
}

func TestEvaluateOne_BelowThresholdNoMatch(t *testing.T) {
	p := Profile{"golang backend development tooling": 1.0}
	m := evaluateOne(p, "frontend design", DefaultParams())
	if m.matched || m.value != 0 {
		t.Errorf("disjoint token sets should not match, got %+v", m)
	}
}

func TestRank(t *testing.T) {
	task := Task{RequiredSkills: []string{"python", "sql"}, Priority: PriorityHigh}

	strong := Candidate{EmployeeID: uuid.New(), Profile: Profile{"python": 0.9, "sql": 0.9}}
	middling := Candidate{EmployeeID: uuid.New(), Profile: Profile{"python": 0.5}}
	weak := Candidate{EmployeeID: uuid.New(), Profile: Profile{}, WorkloadPct: 100}

	res := Rank(task, []Candidate{weak, middling, strong}, 2, 20, DefaultParams())

	if len(res) > 2 {
		t.Fatalf("limit not respected: %d results", len(res))
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Fatalf("results not sorted non-increasing: %v", res)
		}
	}
	for _, r := range res {
		if r.Score < 20 {
			t.Errorf("result below minScore: %v", r.Score)
		}
		if r.EmployeeID == weak.EmployeeID {
			t.Errorf("weak candidate should have been filtered out")
		}
	}
	if res[0].EmployeeID != strong.EmployeeID {
		t.Errorf("strongest candidate not first: %v", res)
	}
}

func TestRank_StableTies(t *testing.T) {
	task := Task{RequiredSkills: []string{"python"}, Priority: PriorityMedium}
	a := Candidate{EmployeeID: uuid.New(), Profile: Profile{"python": 0.8}}
	b := Candidate{EmployeeID: uuid.New(), Profile: Profile{"python": 0.8}}

	res := Rank(task, []Candidate{a, b}, 10, 0, DefaultParams())
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
	if res[0].EmployeeID != a.EmployeeID || res[1].EmployeeID != b.EmployeeID {
		t.Errorf("tie did not preserve candidate order")
	}
}

func TestRank_MatchingSkillsExplanation(t *testing.T) {
	task := Task{RequiredSkills: []string{"nodejs", "sql", "kubernetes"}, Priority: PriorityHigh}
	c := Candidate{EmployeeID: uuid.New(), Profile: Profile{"node.js": 0.9, "sql": 0.8}}

	res := Rank(task, []Candidate{c}, 5, 0, DefaultParams())
	if len(res) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res))
	}
	got := res[0].MatchingSkills
	want := []string{"Node.js", "SQL"}
	if len(got) != len(want) {
		t.Fatalf("matching skills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matching skills = %v, want %v", got, want)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for p, w := range priorityWeights {
		sum := w.Skill + w.Coverage + w.Experience + w.Workload
		if !almostEqual(sum, 1.0) {
			t.Errorf("weights for %s sum to %v", p, sum)
		}
	}
}
