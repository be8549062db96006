// Package brd expands a project summary into the fixed-shape Business
// Requirements Document.
package brd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfedotov/brdforge/internal/model"
)

// Author identifies the document author.
type Author struct {
	Name string
	Role string
}

// Builder produces BRDs. The clock is injectable so generation stays
// deterministic under test; everything else is a pure function of the
// summary snapshot.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderAt creates a builder with a fixed clock.
func NewBuilderAt(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// Build derives the document from a summary snapshot. The result is
// immutable; regenerating from a new summary replaces it wholesale.
func (b *Builder) Build(s *model.Summary, projectName string, author Author) *model.BRD {
	return &model.BRD{
		Metadata: model.BRDMetadata{
			ProjectName:   projectName,
			Author:        author.Name,
			Role:          author.Role,
			GeneratedDate: b.now(),
			Version:       "1.0",
		},
		ExecutiveSummary:          buildExecutiveSummary(s, projectName),
		BusinessObjectives:        buildBusinessObjectives(s),
		StakeholderAnalysis:       buildStakeholderAnalysis(s.Stakeholders),
		FunctionalRequirements:    buildFunctionalRequirements(s.Requirements),
		NonFunctionalRequirements: buildNonFunctionalRequirements(s.Requirements),
		Assumptions:               defaultAssumptions(),
		Timeline:                  defaultTimeline(),
		SuccessMetrics:            defaultSuccessMetrics(),
		RiskManagement:            buildRiskManagement(s.Risks),
	}
}

func buildExecutiveSummary(s *model.Summary, projectName string) model.ExecutiveSummary {
	var sb strings.Builder
	fmt.Fprintf(&sb, "This Business Requirements Document outlines the requirements, decisions, and strategic direction for %s.\n\n", projectName)
	sb.WriteString("Based on comprehensive stakeholder input from across the organization, this document captures the key decisions, technical requirements, and business objectives that will guide project execution.\n\n")

	if len(s.KeyDecisions) > 0 {
		titles := make([]string, 0, 3)
		for _, d := range s.KeyDecisions {
			if len(titles) == 3 {
				break
			}
			titles = append(titles, strings.ToLower(d.Title))
		}
		fmt.Fprintf(&sb, "Key strategic decisions have been made regarding %s.\n\n", strings.Join(titles, ", "))
	}
	if len(s.Requirements) > 0 {
		fmt.Fprintf(&sb, "The project encompasses %d core requirements spanning functional, non-functional, and compliance needs.\n\n", len(s.Requirements))
	}

	sb.WriteString("This document serves as the authoritative source for project scope, priorities, and success criteria.")

	return model.ExecutiveSummary{
		Title:   "Executive Summary",
		Content: sb.String(),
	}
}

func buildBusinessObjectives(s *model.Summary) model.BusinessObjectives {
	goals := make([]model.Goal, 0, 3)
	for i, d := range s.KeyDecisions {
		if i == 3 {
			break
		}
		priority := "High"
		if i == 0 {
			priority = "Critical"
		}
		goals = append(goals, model.Goal{
			Goal:        d.Title,
			Description: d.Description,
			Priority:    priority,
		})
	}

	return model.BusinessObjectives{
		Title:            "Business Objectives",
		PrimaryGoals:     goals,
		SuccessCriteria:  successCriteria(),
		ExpectedOutcomes: expectedOutcomes(),
	}
}

func buildStakeholderAnalysis(stakeholders []model.Stakeholder) model.StakeholderAnalysis {
	rows := make([]model.StakeholderRow, 0, len(stakeholders))
	for _, s := range stakeholders {
		frequency := "Bi-weekly"
		role := strings.ToLower(s.Role)
		if strings.Contains(role, "ceo") || strings.Contains(role, "lead") {
			frequency = "Weekly"
		}
		rows = append(rows, model.StakeholderRow{
			Name:                   s.Name,
			Role:                   s.Role,
			Responsibility:         s.Responsibility,
			CommunicationFrequency: frequency,
		})
	}

	return model.StakeholderAnalysis{
		Title:             "Stakeholder Analysis",
		Stakeholders:      rows,
		CommunicationPlan: communicationPlan,
	}
}

func buildFunctionalRequirements(requirements []model.Requirement) model.FunctionalRequirements {
	var out []model.FunctionalRequirement
	for _, r := range requirements {
		if r.Type != model.RequirementFunctional && r.Type != model.RequirementBusiness {
			continue
		}
		out = append(out, model.FunctionalRequirement{
			ID:                 fmt.Sprintf("FR-%03d", len(out)+1),
			Description:        r.Description,
			Priority:           r.Priority,
			AcceptanceCriteria: acceptanceCriteria(),
		})
	}

	return model.FunctionalRequirements{
		Title:        "Functional Requirements",
		Requirements: out,
	}
}

func buildNonFunctionalRequirements(requirements []model.Requirement) model.NonFunctionalRequirements {
	var security, compliance []string
	for _, r := range requirements {
		switch r.Type {
		case model.RequirementSecurity:
			security = append(security, r.Description)
		case model.RequirementCompliance:
			compliance = append(compliance, r.Description)
		}
	}

	return model.NonFunctionalRequirements{
		Title:       "Non-Functional Requirements",
		Performance: performanceRequirements(),
		Security:    security,
		Compliance:  compliance,
		Scalability: scalabilityRequirements(),
	}
}

func buildRiskManagement(risks []model.Risk) model.RiskManagement {
	out := make([]model.ManagedRisk, 0, len(risks))
	for i, r := range risks {
		probability := "Low"
		if r.Severity == model.SeverityHigh {
			probability = "Medium"
		}
		out = append(out, model.ManagedRisk{
			ID:          fmt.Sprintf("RISK-%03d", i+1),
			Title:       r.Title,
			Description: r.Description,
			Severity:    r.Severity,
			Probability: probability,
			Mitigation:  r.Mitigation,
			Contingency: contingency(r.Severity),
		})
	}

	return model.RiskManagement{
		Title: "Risk Management",
		Risks: out,
	}
}

// contingency is the three-tier escalation rule keyed by severity.
func contingency(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "Escalate immediately to project sponsor; activate contingency resources"
	case model.SeverityMedium:
		return "Monitor closely; implement mitigation plan within 48 hours"
	}
	return "Document and review in next status meeting"
}
