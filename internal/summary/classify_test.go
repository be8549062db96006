package summary

import (
	"testing"

	"github.com/mfedotov/brdforge/internal/model"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		content string
		want    model.Severity
	}{
		{"a critical defect in checkout", model.SeverityHigh},
		{"possible data breach", model.SeverityHigh},
		{"the app may crash under load", model.SeverityHigh},
		{"legal exposure is growing", model.SeverityMedium},
		{"this is a risk we accept", model.SeverityMedium},
		{"nothing alarming here", model.SeverityLow},
	}
	for _, c := range cases {
		if got := classifySeverity(c.content); got != c.want {
			t.Errorf("classifySeverity(%q) = %s, want %s", c.content, got, c.want)
		}
	}
}

func TestClassifySeverity_FirstRuleWins(t *testing.T) {
	// Content matching both tiers grades by the earlier rule.
	if got := classifySeverity("critical risk"); got != model.SeverityHigh {
		t.Errorf("expected High for overlapping keywords, got %s", got)
	}
}

func TestClassifyRequirementType(t *testing.T) {
	cases := []struct {
		content string
		want    model.RequirementType
	}{
		{"must meet HIPAA rules", model.RequirementCompliance},
		{"PCI scope applies here", model.RequirementCompliance},
		{"enable encryption at rest", model.RequirementSecurity},
		{"dark mode is wanted", model.RequirementFunctional},
		{"grow quarterly revenue", model.RequirementBusiness},
	}
	for _, c := range cases {
		if got := classifyRequirementType(c.content); got != c.want {
			t.Errorf("classifyRequirementType(%q) = %s, want %s", c.content, got, c.want)
		}
	}
}

func TestClassifyRequirementType_ComplianceBeforeSecurity(t *testing.T) {
	// "compliance audit" matches both tables; compliance is checked first.
	if got := classifyRequirementType("the compliance audit"); got != model.RequirementCompliance {
		t.Errorf("expected Compliance for overlapping keywords, got %s", got)
	}
}

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		content string
		want    model.Priority
	}{
		{"this is non-negotiable", model.PriorityHigh},
		{"payment must clear in 2s", model.PriorityHigh},
		{"we should add caching", model.PriorityMedium},
		{"nice to have someday", model.PriorityLow},
	}
	for _, c := range cases {
		if got := classifyPriority(c.content); got != c.want {
			t.Errorf("classifyPriority(%q) = %s, want %s", c.content, got, c.want)
		}
	}
}

func TestClassifyResponsibility(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"CEO", "Strategic oversight and final decisions"},
		{"CTO", "Technical architecture and implementation"},
		{"Senior Dev", "Development and technical delivery"},
		{"Gardener", "Project contribution and collaboration"},
	}
	for _, c := range cases {
		if got := classifyResponsibility(c.role); got != c.want {
			t.Errorf("classifyResponsibility(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestTitleLookupsHaveDefaults(t *testing.T) {
	if got := decisionTitle("unheard-of"); got != "Key Decision" {
		t.Errorf("expected default decision title, got %q", got)
	}
	if got := riskTitle("unheard-of"); got != "Project Risk" {
		t.Errorf("expected default risk title, got %q", got)
	}
}
