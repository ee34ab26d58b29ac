package skill

import "testing"

func TestNormalizeKey_Aliases(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"nodejs", "node.js"},
		{"Node JS", "node.js"},
		{"node.js", "node.js"},
		{"ReactJS", "react"},
		{"K8s", "kubernetes"},
		{"Postgres", "postgresql"},
		{"CI / CD", "ci/cd"},
		{"ci-cd", "ci/cd"},
		{"C Sharp", "c#"},
		{"dot net", ".net"},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.raw); got != c.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeKey_Cleanup(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  Python  ", "python"},
		{"Data__Analysis", "data analysis"},
		{"(React)", "react"},
		{"UI & UX", "ui and ux"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := NormalizeKey(c.raw); got != c.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestNormalizeKey_Idempotent(t *testing.T) {
	inputs := []string{"nodejs", "Node JS", "C++", "CI / CD", "Machine Learning", "Sveltekit", "random skill"}
	for _, in := range inputs {
		once := NormalizeKey(in)
		twice := NormalizeKey(once)
		if once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"javascript", "JavaScript"},
		{"nodejs", "Node.js"},
		{"postgres", "PostgreSQL"},
		{"machine learning", "Machine Learning"},
		{"rest api", "REST"},
		{"tdd", "TDD"},
		{"stakeholder management", "Stakeholder Management"},
		{"", ""},
	}
	for _, c := range cases {
		if got := DisplayName(c.raw); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, key := range []string{"python", "node.js", "ci/cd", "machine learning"} {
		if !Known(key) {
			t.Errorf("Known(%q) = false, want true", key)
		}
	}
	if Known("underwater basket weaving") {
		t.Errorf("Known should be false for out-of-vocabulary key")
	}
}
