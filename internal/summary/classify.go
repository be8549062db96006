package summary

import (
	"strings"

	"github.com/mfedotov/brdforge/internal/model"
)

// Classification is table-driven: each table is an ordered list of keyword
// rules, first match wins, with a fixed default when nothing matches.

type severityRule struct {
	keywords []string
	severity model.Severity
}

var severityRules = []severityRule{
	{[]string{"critical", "breach", "violation", "crash"}, model.SeverityHigh},
	{[]string{"risk", "worry", "exposure"}, model.SeverityMedium},
}

// classifySeverity grades risk content, defaulting to Low.
func classifySeverity(content string) model.Severity {
	for _, rule := range severityRules {
		if containsAny(content, rule.keywords) {
			return rule.severity
		}
	}
	return model.SeverityLow
}

type requirementTypeRule struct {
	keywords []string
	rtype    model.RequirementType
}

var requirementTypeRules = []requirementTypeRule{
	{[]string{"compliance", "hipaa", "pci", "legal"}, model.RequirementCompliance},
	{[]string{"security", "audit", "encryption"}, model.RequirementSecurity},
	{[]string{"feature", "ui", "dark mode"}, model.RequirementFunctional},
}

// classifyRequirementType types requirement content, defaulting to Business.
func classifyRequirementType(content string) model.RequirementType {
	for _, rule := range requirementTypeRules {
		if containsAny(content, rule.keywords) {
			return rule.rtype
		}
	}
	return model.RequirementBusiness
}

type priorityRule struct {
	keywords []string
	priority model.Priority
}

var priorityRules = []priorityRule{
	{[]string{"must", "critical", "required", "non-negotiable"}, model.PriorityHigh},
	{[]string{"should", "need"}, model.PriorityMedium},
}

// classifyPriority grades requirement content, defaulting to Low.
func classifyPriority(content string) model.Priority {
	for _, rule := range priorityRules {
		if containsAny(content, rule.keywords) {
			return rule.priority
		}
	}
	return model.PriorityLow
}

type responsibilityRule struct {
	keywords       []string
	responsibility string
}

var responsibilityRules = []responsibilityRule{
	{[]string{"ceo", "executive"}, "Strategic oversight and final decisions"},
	{[]string{"cto", "tech"}, "Technical architecture and implementation"},
	{[]string{"cfo", "finance"}, "Budget management and financial oversight"},
	{[]string{"legal", "compliance"}, "Legal compliance and risk management"},
	{[]string{"marketing"}, "Marketing strategy and launch coordination"},
	{[]string{"operations"}, "Operational planning and execution"},
	{[]string{"dev", "engineer"}, "Development and technical delivery"},
}

// classifyResponsibility maps a stakeholder role to a responsibility line.
func classifyResponsibility(role string) string {
	for _, rule := range responsibilityRules {
		if containsAny(role, rule.keywords) {
			return rule.responsibility
		}
	}
	return "Project contribution and collaboration"
}

var decisionTitles = map[model.ConflictType]string{
	model.ConflictBudget:     "Budget Allocation Decision",
	model.ConflictCompliance: "Compliance Approach",
	model.ConflictTimeline:   "Timeline Decision",
	model.ConflictPriority:   "Feature Priority",
	model.ConflictTechnology: "Technology Choice",
}

func decisionTitle(ctype model.ConflictType) string {
	if title, ok := decisionTitles[ctype]; ok {
		return title
	}
	return "Key Decision"
}

var riskTitles = map[model.ConflictType]string{
	model.ConflictBudget:     "Budget Constraint Risk",
	model.ConflictCompliance: "Compliance Risk",
	model.ConflictTimeline:   "Schedule Risk",
	model.ConflictPriority:   "Scope Risk",
	model.ConflictTechnology: "Technical Risk",
}

func riskTitle(ctype model.ConflictType) string {
	if title, ok := riskTitles[ctype]; ok {
		return title
	}
	return "Project Risk"
}

// containsAny reports whether content contains any keyword,
// case-insensitively.
func containsAny(content string, keywords []string) bool {
	lc := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lc, kw) {
			return true
		}
	}
	return false
}
