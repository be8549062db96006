package model

import (
	"sort"
	"time"
)

// Step enumerates the four pipeline stages
type Step int

const (
	StepExtraction Step = 1
	StepConflicts  Step = 2
	StepSummary    Step = 3
	StepBRD        Step = 4
)

// String returns the stage name for a step.
func (s Step) String() string {
	switch s {
	case StepExtraction:
		return "Extraction"
	case StepConflicts:
		return "Conflicts"
	case StepSummary:
		return "Summary"
	case StepBRD:
		return "BRD"
	}
	return "Unknown"
}

// Valid reports whether s is one of the four defined steps.
func (s Step) Valid() bool {
	return s >= StepExtraction && s <= StepBRD
}

// StepSet is the set of completed steps, kept sorted and deduplicated so it
// serializes deterministically.
type StepSet []Step

// Contains reports whether the set includes the given step.
func (ss StepSet) Contains(step Step) bool {
	for _, s := range ss {
		if s == step {
			return true
		}
	}
	return false
}

// With returns a copy of the set including the given step.
func (ss StepSet) With(step Step) StepSet {
	if ss.Contains(step) {
		return ss
	}
	out := make(StepSet, len(ss), len(ss)+1)
	copy(out, ss)
	out = append(out, step)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Project status values
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ProjectMetadata carries identity and progress for one project.
type ProjectMetadata struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Author         string     `json:"author,omitempty"`
	Role           string     `json:"role,omitempty"`
	Status         string     `json:"status"`
	CurrentStep    Step       `json:"current_step"`
	CompletedSteps StepSet    `json:"completed_steps"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModified   time.Time  `json:"last_modified"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// ProjectState is the full persisted state of one project: metadata plus the
// output of every completed stage. It is written to the store after every
// mutation and never deleted by the core itself.
type ProjectState struct {
	Metadata       ProjectMetadata `json:"metadata"`
	ExtractionData []Fact          `json:"extraction_data,omitempty"`
	ConflictsData  []Conflict      `json:"conflicts_data,omitempty"`
	SummaryData    *Summary        `json:"summary_data,omitempty"`
	BRDData        *BRD            `json:"brd_data,omitempty"`
}
