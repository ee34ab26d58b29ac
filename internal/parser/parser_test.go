package parser

import (
	"strings"
	"testing"
)

func TestExtractDetails(t *testing.T) {
	text := "Jane Doe\nSenior Backend Developer\njane.doe@example.com\n\nExperience:\n..."
	d := ExtractDetails(text)

	if d.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", d.Name)
	}
	if d.Role != "Senior Backend Developer" {
		t.Errorf("role = %q, want Senior Backend Developer", d.Role)
	}
	if d.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", d.Email)
	}
}

func TestExtractDetails_Empty(t *testing.T) {
	d := ExtractDetails("   \n ")
	if d.Name != "" || d.Email != "" || d.Role != "" {
		t.Errorf("expected empty details, got %+v", d)
	}
}

func TestExtractDetails_NoFalseNameFromContacts(t *testing.T) {
	d := ExtractDetails("+62 812 3456\njane@example.com\nhttps://example.com\n")
	if d.Name != "" {
		t.Errorf("contact lines should not be taken as a name, got %q", d.Name)
	}
	if d.Email != "jane@example.com" {
		t.Errorf("email = %q", d.Email)
	}
}

func TestCleanText(t *testing.T) {
	in := "Built C++ services and Node.js APIs. See https://example.com @jane #golang"
	out := CleanText(in)

	for _, want := range []string{"cplusplus", "nodejs"} {
		if !strings.Contains(out, want) {
			t.Errorf("CleanText output %q missing %q", out, want)
		}
	}
	for _, absent := range []string{"http", "@jane", "#golang", "c++"} {
		if strings.Contains(out, absent) {
			t.Errorf("CleanText output %q still contains %q", out, absent)
		}
	}
}

func TestCleanText_NonString(t *testing.T) {
	if CleanText("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestKeywordPredictor(t *testing.T) {
	p := KeywordPredictor{}

	label, ok := p.PredictRole(CleanText("Years of Kubernetes, Docker and Terraform infrastructure work."))
	if !ok || label != "DevOps Engineer" {
		t.Errorf("PredictRole = %q, %v; want DevOps Engineer", label, ok)
	}

	if _, ok := p.PredictRole("nothing relevant here"); ok {
		t.Error("expected no prediction for unrelated text")
	}

	if _, ok := p.PredictRole(""); ok {
		t.Error("expected no prediction for empty text")
	}
}
