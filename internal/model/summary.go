package model

// Severity grades a risk
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Priority grades a requirement
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// RequirementType classifies a requirement
type RequirementType string

const (
	RequirementCompliance RequirementType = "Compliance"
	RequirementSecurity   RequirementType = "Security"
	RequirementFunctional RequirementType = "Functional"
	RequirementBusiness   RequirementType = "Business"
)

// Decision is a key decision derived from a resolved conflict or a
// decision-flavored fact.
type Decision struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	Rationale   string `json:"rationale,omitempty"`
}

// Risk is a project risk derived from rejected conflict options or
// risk-flavored facts.
type Risk struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation,omitempty"`
}

// Requirement is a classified requirement statement.
type Requirement struct {
	ID          string          `json:"id"`
	Type        RequirementType `json:"type"`
	Description string          `json:"description"`
	Priority    Priority        `json:"priority"`
	Source      string          `json:"source,omitempty"`
}

// Stakeholder is a person surfaced from fact speakers.
type Stakeholder struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Responsibility string `json:"responsibility"`
}

// Summary is the structured digest derived from facts and resolved
// conflicts. It is editable after generation; additions, removals, and
// edits are the caller's responsibility, not part of the derivation
// contract.
type Summary struct {
	KeyDecisions []Decision    `json:"key_decisions"`
	Risks        []Risk        `json:"risks"`
	Requirements []Requirement `json:"requirements"`
	Stakeholders []Stakeholder `json:"stakeholders"`
}
