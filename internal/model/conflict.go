package model

// ConflictType categorizes a detected contradiction
type ConflictType string

const (
	ConflictBudget     ConflictType = "budget"
	ConflictCompliance ConflictType = "compliance"
	ConflictTimeline   ConflictType = "timeline"
	ConflictPriority   ConflictType = "priority"
	ConflictTechnology ConflictType = "technology"
)

// Conflict is a detected contradiction between exactly two facts. It is
// created unresolved by the detector and mutated externally during
// resolution: SelectedFactID is set first, then Resolved with an optional
// Comment. Once non-empty, SelectedFactID must equal FactA.ID or FactB.ID.
type Conflict struct {
	ID             string       `json:"id"`
	Type           ConflictType `json:"type"`
	FactA          Fact         `json:"fact_a"`
	FactB          Fact         `json:"fact_b"`
	Resolved       bool         `json:"resolved"`
	SelectedFactID string       `json:"selected_fact_id,omitempty"`
	Comment        string       `json:"comment,omitempty"`
	Description    string       `json:"description,omitempty"`
}

// Involves reports whether the given fact is one of the conflict's two options.
func (c Conflict) Involves(factID string) bool {
	return c.FactA.ID == factID || c.FactB.ID == factID
}

// Selected returns the fact chosen during resolution, if any.
func (c Conflict) Selected() (Fact, bool) {
	switch c.SelectedFactID {
	case "":
		return Fact{}, false
	case c.FactA.ID:
		return c.FactA, true
	case c.FactB.ID:
		return c.FactB, true
	}
	return Fact{}, false
}

// Unselected returns the option that was not chosen. When FactA was selected
// it returns FactB, otherwise FactA.
func (c Conflict) Unselected() Fact {
	if c.SelectedFactID == c.FactA.ID {
		return c.FactB
	}
	return c.FactA
}
