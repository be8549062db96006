// Package summary derives the structured project summary (decisions, risks,
// requirements, stakeholders) from facts and resolved conflicts.
package summary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mfedotov/brdforge/internal/model"
)

// Output caps. Decision and risk scans over-collect to a guard of 8 before
// truncating, matching the original derivation exactly.
const (
	maxDecisions    = 6
	maxRisks        = 5
	maxRequirements = 8
	maxStakeholders = 8
	scanGuard       = 8
)

var (
	decisionKeywords    = []string{"decided", "final", "locked", "priority", "must", "will"}
	conflictRiskWords   = []string{"risk", "breach", "legal", "crash", "vulnerability"}
	standaloneRiskWords = []string{"risk", "breach", "crash", "vulnerability", "exposure", "unstable"}
	requirementKeywords = []string{"must", "required", "need", "compliance", "should", "necessary"}
)

// speakerPattern splits "Name (Role)" speakers; the role part is optional.
var speakerPattern = regexp.MustCompile(`^([^(]+)(?:\(([^)]+)\))?`)

// Build derives a summary from facts and their conflicts. It is pure given
// fully-resolved conflicts; IDs restart at 1 on every call. Only relevant
// facts contribute: the selected option of each resolved conflict plus every
// fact that appears in no conflict at all.
func Build(facts []model.Fact, conflicts []model.Conflict) *model.Summary {
	relevant := relevantFacts(facts, conflicts)

	return &model.Summary{
		KeyDecisions: extractDecisions(relevant, conflicts),
		Risks:        extractRisks(relevant, conflicts),
		Requirements: extractRequirements(relevant),
		Stakeholders: extractStakeholders(relevant),
	}
}

// relevantFacts returns selected conflict options followed by facts that
// were never part of any conflict, both in original fact order.
func relevantFacts(facts []model.Fact, conflicts []model.Conflict) []model.Fact {
	selected := make(map[string]bool)
	conflicted := make(map[string]bool)
	for _, c := range conflicts {
		conflicted[c.FactA.ID] = true
		conflicted[c.FactB.ID] = true
		if c.Resolved && c.SelectedFactID != "" {
			selected[c.SelectedFactID] = true
		}
	}

	var chosen, untouched []model.Fact
	for _, f := range facts {
		if selected[f.ID] {
			chosen = append(chosen, f)
		}
		if !conflicted[f.ID] {
			untouched = append(untouched, f)
		}
	}
	return append(chosen, untouched...)
}

func extractDecisions(relevant []model.Fact, conflicts []model.Conflict) []model.Decision {
	var decisions []model.Decision
	lastID := 0
	nextID := func() string {
		lastID++
		return fmt.Sprintf("decision_%d", lastID)
	}

	for _, c := range conflicts {
		if !c.Resolved || c.SelectedFactID == "" {
			continue
		}
		sel, ok := findFact(relevant, c.SelectedFactID)
		if !ok {
			continue
		}
		rationale := c.Comment
		if rationale == "" {
			rationale = fmt.Sprintf("Resolved %s conflict", c.Type)
		}
		decisions = append(decisions, model.Decision{
			ID:          nextID(),
			Title:       decisionTitle(c.Type),
			Description: sel.Content,
			Source:      sel.SourceLabel,
			Rationale:   rationale,
		})
	}

	for _, f := range relevant {
		if len(decisions) >= scanGuard {
			break
		}
		if !containsAny(f.Content, decisionKeywords) {
			continue
		}
		decisions = append(decisions, model.Decision{
			ID:          nextID(),
			Title:       titleFromContent(f.Content),
			Description: f.Content,
			Source:      f.SourceLabel,
		})
	}

	if len(decisions) > maxDecisions {
		decisions = decisions[:maxDecisions]
	}
	return decisions
}

func extractRisks(relevant []model.Fact, conflicts []model.Conflict) []model.Risk {
	var risks []model.Risk
	lastID := 0
	nextID := func() string {
		lastID++
		return fmt.Sprintf("risk_%d", lastID)
	}

	for _, c := range conflicts {
		if !c.Resolved {
			continue
		}
		rejected := c.Unselected()
		if !containsAny(rejected.Content, conflictRiskWords) {
			continue
		}
		mitigation := c.Comment
		if mitigation == "" {
			mitigation = "To be determined"
		}
		risks = append(risks, model.Risk{
			ID:          nextID(),
			Title:       riskTitle(c.Type),
			Severity:    classifySeverity(rejected.Content),
			Description: rejected.Content,
			Mitigation:  mitigation,
		})
	}

	for _, f := range relevant {
		if len(risks) >= scanGuard {
			break
		}
		if !containsAny(f.Content, standaloneRiskWords) {
			continue
		}
		risks = append(risks, model.Risk{
			ID:          nextID(),
			Title:       titleFromContent(f.Content),
			Severity:    classifySeverity(f.Content),
			Description: f.Content,
			Mitigation:  "Requires assessment and mitigation planning",
		})
	}

	if len(risks) > maxRisks {
		risks = risks[:maxRisks]
	}
	return risks
}

func extractRequirements(relevant []model.Fact) []model.Requirement {
	var requirements []model.Requirement
	lastID := 0

	for _, f := range relevant {
		if !containsAny(f.Content, requirementKeywords) {
			continue
		}
		lastID++
		requirements = append(requirements, model.Requirement{
			ID:          fmt.Sprintf("req_%d", lastID),
			Type:        classifyRequirementType(f.Content),
			Description: f.Content,
			Priority:    classifyPriority(f.Content),
			Source:      f.SourceLabel,
		})
	}

	if len(requirements) > maxRequirements {
		requirements = requirements[:maxRequirements]
	}
	return requirements
}

func extractStakeholders(relevant []model.Fact) []model.Stakeholder {
	var stakeholders []model.Stakeholder
	seen := make(map[string]bool)
	lastID := 0

	for _, f := range relevant {
		if f.Speaker == "" {
			continue
		}
		match := speakerPattern.FindStringSubmatch(f.Speaker)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		role := match[2]
		if role == "" {
			role = "Team Member"
		}
		lastID++
		stakeholders = append(stakeholders, model.Stakeholder{
			ID:             fmt.Sprintf("stakeholder_%d", lastID),
			Name:           name,
			Role:           role,
			Responsibility: classifyResponsibility(role),
		})
	}

	if len(stakeholders) > maxStakeholders {
		stakeholders = stakeholders[:maxStakeholders]
	}
	return stakeholders
}

// titleFromContent takes the first clause of the content, truncated to 60
// characters.
func titleFromContent(content string) string {
	first := content
	if idx := strings.IndexAny(content, ".!?"); idx >= 0 {
		first = content[:idx]
	}
	runes := []rune(first)
	if len(runes) <= 60 {
		return first
	}
	return string(runes[:57]) + "..."
}

func findFact(facts []model.Fact, id string) (model.Fact, bool) {
	for _, f := range facts {
		if f.ID == id {
			return f, true
		}
	}
	return model.Fact{}, false
}
