// Package render serializes generated documents to Markdown, HTML and JSON.
package render

import (
	"fmt"
	"strings"

	"github.com/mfedotov/brdforge/internal/model"
)

// Options control optional document chrome.
type Options struct {
	// IncludeFooter appends a generation footer after the last section.
	IncludeFooter bool
}

// Markdown renders the document as a standalone Markdown file. Sections
// appear in the fixed document order; empty subsections are skipped.
func Markdown(doc *model.BRD, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Metadata.ProjectName)
	fmt.Fprintf(&b, "**Version:** %s | **Author:** %s | **Date:** %s\n\n",
		doc.Metadata.Version, doc.Metadata.Author, doc.Metadata.GeneratedDate.Format("Jan 2, 2006"))
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", doc.ExecutiveSummary.Content)

	writeBusinessObjectives(&b, doc.BusinessObjectives)
	writeStakeholderAnalysis(&b, doc.StakeholderAnalysis)
	writeFunctionalRequirements(&b, doc.FunctionalRequirements)
	writeNonFunctionalRequirements(&b, doc.NonFunctionalRequirements)
	writeAssumptions(&b, doc.Assumptions)
	writeTimeline(&b, doc.Timeline)
	writeSuccessMetrics(&b, doc.SuccessMetrics)
	writeRiskManagement(&b, doc.RiskManagement)

	if opts.IncludeFooter {
		fmt.Fprintf(&b, "---\n\n*Generated by brdforge on %s*\n", doc.Metadata.GeneratedDate.Format("Jan 2, 2006"))
	}
	return b.String()
}

func writeBusinessObjectives(b *strings.Builder, obj model.BusinessObjectives) {
	b.WriteString("## Business Objectives\n\n")
	if len(obj.PrimaryGoals) > 0 {
		b.WriteString("### Primary Goals\n\n")
		for _, g := range obj.PrimaryGoals {
			fmt.Fprintf(b, "- **%s** (Priority: %s)\n  - %s\n\n", g.Goal, g.Priority, g.Description)
		}
	}
	writeBulleted(b, "### Success Criteria", obj.SuccessCriteria)
	writeBulleted(b, "### Expected Outcomes", obj.ExpectedOutcomes)
}

func writeStakeholderAnalysis(b *strings.Builder, sa model.StakeholderAnalysis) {
	b.WriteString("## Stakeholder Analysis\n\n")
	if len(sa.Stakeholders) > 0 {
		b.WriteString("### Stakeholders\n\n")
		b.WriteString("| Name | Role | Responsibility | Communication Frequency |\n")
		b.WriteString("|------|------|-----------------|------------------------|\n")
		for _, s := range sa.Stakeholders {
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", s.Name, s.Role, s.Responsibility, s.CommunicationFrequency)
		}
		b.WriteString("\n")
	}
	if sa.CommunicationPlan != "" {
		fmt.Fprintf(b, "### Communication Plan\n\n%s\n\n", sa.CommunicationPlan)
	}
}

func writeFunctionalRequirements(b *strings.Builder, fr model.FunctionalRequirements) {
	b.WriteString("## Functional Requirements\n\n")
	for _, req := range fr.Requirements {
		fmt.Fprintf(b, "### %s - %s\n\n**Priority:** %s\n\n", req.ID, req.Description, req.Priority)
		if len(req.AcceptanceCriteria) > 0 {
			b.WriteString("**Acceptance Criteria:**\n")
			for _, c := range req.AcceptanceCriteria {
				fmt.Fprintf(b, "- %s\n", c)
			}
			b.WriteString("\n")
		}
	}
}

func writeNonFunctionalRequirements(b *strings.Builder, nfr model.NonFunctionalRequirements) {
	b.WriteString("## Non-Functional Requirements\n\n")
	writeBulleted(b, "### Performance Requirements", nfr.Performance)
	writeBulleted(b, "### Security Requirements", nfr.Security)
	writeBulleted(b, "### Compliance Requirements", nfr.Compliance)
	writeBulleted(b, "### Scalability Requirements", nfr.Scalability)
}

func writeAssumptions(b *strings.Builder, a model.Assumptions) {
	b.WriteString("## Assumptions\n\n")
	writeBulleted(b, "### Business Assumptions", a.Business)
	writeBulleted(b, "### Technical Assumptions", a.Technical)
	writeBulleted(b, "### Resource Assumptions", a.Resource)
}

func writeTimeline(b *strings.Builder, tl model.Timeline) {
	b.WriteString("## Timeline\n\n")
	if len(tl.Phases) > 0 {
		b.WriteString("### Project Phases\n\n")
		for _, p := range tl.Phases {
			fmt.Fprintf(b, "#### %s\n\n**Duration:** %s\n\n**Deliverables:**\n", p.Phase, p.Duration)
			for _, d := range p.Deliverables {
				fmt.Fprintf(b, "- %s\n", d)
			}
			b.WriteString("\n")
		}
	}
	if len(tl.Milestones) > 0 {
		b.WriteString("### Milestones\n\n| Milestone | Target Date |\n|-----------|-------------|\n")
		for _, m := range tl.Milestones {
			fmt.Fprintf(b, "| %s | %s |\n", m.Milestone, m.Date)
		}
		b.WriteString("\n")
	}
}

func writeSuccessMetrics(b *strings.Builder, sm model.SuccessMetrics) {
	b.WriteString("## Success Metrics\n\n")
	if len(sm.KPIs) > 0 {
		b.WriteString("### Key Performance Indicators\n\n| Metric | Target | Measurement |\n|--------|--------|-------------|\n")
		for _, kpi := range sm.KPIs {
			fmt.Fprintf(b, "| %s | %s | %s |\n", kpi.Metric, kpi.Target, kpi.Measurement)
		}
		b.WriteString("\n")
	}
}

func writeRiskManagement(b *strings.Builder, rm model.RiskManagement) {
	b.WriteString("## Risk Management\n\n")
	if len(rm.Risks) == 0 {
		return
	}
	b.WriteString("### Identified Risks\n\n")
	for _, r := range rm.Risks {
		fmt.Fprintf(b, "### %s - %s %s\n\n", r.ID, r.Title, severityIcon(r.Severity))
		fmt.Fprintf(b, "**Severity:** %s | **Probability:** %s\n\n", r.Severity, r.Probability)
		fmt.Fprintf(b, "**Description:** %s\n\n", r.Description)
		fmt.Fprintf(b, "**Mitigation Plan:** %s\n\n", r.Mitigation)
		fmt.Fprintf(b, "**Contingency Plan:** %s\n\n", r.Contingency)
		b.WriteString("---\n\n")
	}
}

func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "\U0001F534"
	case model.SeverityMedium:
		return "\U0001F7E0"
	}
	return "\U0001F7E1"
}

func writeBulleted(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n\n")
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}
