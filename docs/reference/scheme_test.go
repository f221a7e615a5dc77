package reference

import (
	"os"
	"strings"
	"testing"
)

func readSchemeDoc(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("scheme.md")
	if err != nil {
		t.Fatalf("Failed to read scheme.md: %v", err)
	}
	return string(content)
}

func TestSchemeReferenceExists(t *testing.T) {
	info, err := os.Stat("scheme.md")
	if err != nil {
		t.Fatalf("scheme.md should exist: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("scheme.md should not be empty")
	}
}

func TestSchemeReferenceDocumentsFields(t *testing.T) {
	doc := readSchemeDoc(t)

	for _, field := range []string{"`name`", "`weight`", "`min`", "`max`", "`letter`", "`lower`"} {
		if !strings.Contains(doc, field) {
			t.Errorf("Missing field documentation: %s", field)
		}
	}
}

func TestSchemeReferenceValidationPipeline(t *testing.T) {
	doc := readSchemeDoc(t)

	if !strings.Contains(doc, "## Validation Pipeline") {
		t.Error("Missing '## Validation Pipeline' section")
	}
	if !strings.Contains(doc, "CUE") {
		t.Error("Missing CUE validation explanation")
	}
	for _, rule := range []string{"sum to 1.0", "descending", "coverage"} {
		if !strings.Contains(doc, rule) {
			t.Errorf("Missing semantic rule: %s", rule)
		}
	}
}

func TestSchemeReferenceMatchesBuiltinScheme(t *testing.T) {
	doc := readSchemeDoc(t)

	// The documented built-in weights are the shipped ones.
	for _, s := range []string{"homework 30%", "exams 50%", "participation 20%", "90/80/70/60"} {
		if !strings.Contains(doc, s) {
			t.Errorf("Missing built-in scheme description: %s", s)
		}
	}
}
