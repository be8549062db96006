package model

import "time"

// BRD is the fixed-shape Business Requirements Document produced from a
// Summary snapshot. It is derived once and never mutated; regeneration from
// a new Summary replaces it wholesale.
type BRD struct {
	Metadata                  BRDMetadata               `json:"metadata"`
	ExecutiveSummary          ExecutiveSummary          `json:"executive_summary"`
	BusinessObjectives        BusinessObjectives        `json:"business_objectives"`
	StakeholderAnalysis       StakeholderAnalysis       `json:"stakeholder_analysis"`
	FunctionalRequirements    FunctionalRequirements    `json:"functional_requirements"`
	NonFunctionalRequirements NonFunctionalRequirements `json:"non_functional_requirements"`
	Assumptions               Assumptions               `json:"assumptions"`
	Timeline                  Timeline                  `json:"timeline"`
	SuccessMetrics            SuccessMetrics            `json:"success_metrics"`
	RiskManagement            RiskManagement            `json:"risk_management"`
}

// BRDMetadata identifies the document
type BRDMetadata struct {
	ProjectName   string    `json:"project_name"`
	Author        string    `json:"author"`
	Role          string    `json:"role,omitempty"`
	GeneratedDate time.Time `json:"generated_date"`
	Version       string    `json:"version"`
}

// ExecutiveSummary is the templated opening section
type ExecutiveSummary struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Goal is one primary business goal derived from a key decision
type Goal struct {
	Goal        string `json:"goal"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// BusinessObjectives holds derived goals plus fixed criteria and outcomes
type BusinessObjectives struct {
	Title            string   `json:"title"`
	PrimaryGoals     []Goal   `json:"primary_goals"`
	SuccessCriteria  []string `json:"success_criteria"`
	ExpectedOutcomes []string `json:"expected_outcomes"`
}

// StakeholderRow is one row of the stakeholder analysis table
type StakeholderRow struct {
	Name                   string `json:"name"`
	Role                   string `json:"role"`
	Responsibility         string `json:"responsibility"`
	CommunicationFrequency string `json:"communication_frequency"`
}

// StakeholderAnalysis lists stakeholders and the fixed communication plan
type StakeholderAnalysis struct {
	Title             string           `json:"title"`
	Stakeholders      []StakeholderRow `json:"stakeholders"`
	CommunicationPlan string           `json:"communication_plan"`
}

// FunctionalRequirement is a numbered requirement with acceptance criteria
type FunctionalRequirement struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Priority           Priority `json:"priority"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// FunctionalRequirements groups requirements typed Functional or Business
type FunctionalRequirements struct {
	Title        string                  `json:"title"`
	Requirements []FunctionalRequirement `json:"requirements"`
}

// NonFunctionalRequirements groups security/compliance descriptions with
// fixed performance and scalability boilerplate
type NonFunctionalRequirements struct {
	Title       string   `json:"title"`
	Performance []string `json:"performance"`
	Security    []string `json:"security"`
	Compliance  []string `json:"compliance"`
	Scalability []string `json:"scalability"`
}

// Assumptions is static boilerplate included for document completeness
type Assumptions struct {
	Title     string   `json:"title"`
	Business  []string `json:"business"`
	Technical []string `json:"technical"`
	Resource  []string `json:"resource"`
}

// Phase is one fixed project phase
type Phase struct {
	Phase        string   `json:"phase"`
	Duration     string   `json:"duration"`
	Deliverables []string `json:"deliverables"`
}

// Milestone is one fixed milestone
type Milestone struct {
	Milestone string `json:"milestone"`
	Date      string `json:"date"`
}

// Timeline is static boilerplate: four phases and four milestones
type Timeline struct {
	Title      string      `json:"title"`
	Phases     []Phase     `json:"phases"`
	Milestones []Milestone `json:"milestones"`
}

// KPI is one fixed success metric
type KPI struct {
	Metric      string `json:"metric"`
	Target      string `json:"target"`
	Measurement string `json:"measurement"`
}

// SuccessMetrics is static boilerplate: four KPIs
type SuccessMetrics struct {
	Title string `json:"title"`
	KPIs  []KPI  `json:"kpis"`
}

// ManagedRisk is a numbered risk with probability and contingency derived
// from its severity
type ManagedRisk struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Probability string   `json:"probability"`
	Mitigation  string   `json:"mitigation"`
	Contingency string   `json:"contingency"`
}

// RiskManagement lists the managed risks
type RiskManagement struct {
	Title string        `json:"title"`
	Risks []ManagedRisk `json:"risks"`
}
