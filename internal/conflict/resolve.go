package conflict

import (
	"errors"
	"fmt"

	"github.com/mfedotov/brdforge/internal/model"
)

// ErrUnselected is returned when a batch resolution is attempted while some
// conflict still has no selected option.
var ErrUnselected = errors.New("every conflict must have a selected option")

// SelectOption records which fact of a conflict is authoritative. The
// selection must be one of the conflict's two options.
func SelectOption(conflicts []model.Conflict, conflictID, factID string) error {
	for i := range conflicts {
		if conflicts[i].ID != conflictID {
			continue
		}
		if !conflicts[i].Involves(factID) {
			return fmt.Errorf("fact %s is not an option of conflict %s", factID, conflictID)
		}
		conflicts[i].SelectedFactID = factID
		return nil
	}
	return fmt.Errorf("conflict %s not found", conflictID)
}

// ResolveAll marks every conflict resolved, attaching per-conflict comments
// keyed by conflict ID. All conflicts must already have a selection.
func ResolveAll(conflicts []model.Conflict, comments map[string]string) error {
	if !AllSelected(conflicts) {
		return ErrUnselected
	}
	for i := range conflicts {
		conflicts[i].Resolved = true
		conflicts[i].Comment = comments[conflicts[i].ID]
	}
	return nil
}

// AllSelected reports whether every conflict has a selected option.
func AllSelected(conflicts []model.Conflict) bool {
	for _, c := range conflicts {
		if c.SelectedFactID == "" {
			return false
		}
	}
	return true
}

// AllResolved reports whether every conflict has been resolved. It is
// vacuously true for an empty list.
func AllResolved(conflicts []model.Conflict) bool {
	for _, c := range conflicts {
		if !c.Resolved {
			return false
		}
	}
	return true
}
