package render

import (
	"fmt"
	"io"

	"github.com/mfedotov/brdforge/internal/model"
)

// Conflicts writes a human-readable listing of detected conflicts, one block
// per conflict, for review before resolution.
func Conflicts(w io.Writer, conflicts []model.Conflict) {
	for _, c := range conflicts {
		fmt.Fprintf(w, "%s [%s] %s\n", c.ID, c.Type, c.Description)
		fmt.Fprintf(w, "  %s: %q (%s)\n", c.FactA.ID, c.FactA.Content, c.FactA.SourceLabel)
		fmt.Fprintf(w, "  %s: %q (%s)\n", c.FactB.ID, c.FactB.Content, c.FactB.SourceLabel)
		if c.Resolved {
			fmt.Fprintf(w, "  resolved: %s\n", c.SelectedFactID)
		}
		fmt.Fprintln(w)
	}
}

// SummaryText writes the derived summary in outline form.
func SummaryText(w io.Writer, s *model.Summary) {
	fmt.Fprintf(w, "Key decisions (%d):\n", len(s.KeyDecisions))
	for _, d := range s.KeyDecisions {
		fmt.Fprintf(w, "  %s  %s: %s\n", d.ID, d.Title, d.Description)
	}
	fmt.Fprintf(w, "Risks (%d):\n", len(s.Risks))
	for _, r := range s.Risks {
		fmt.Fprintf(w, "  %s  [%s] %s\n", r.ID, r.Severity, r.Title)
	}
	fmt.Fprintf(w, "Requirements (%d):\n", len(s.Requirements))
	for _, r := range s.Requirements {
		fmt.Fprintf(w, "  %s  [%s/%s] %s\n", r.ID, r.Type, r.Priority, r.Description)
	}
	fmt.Fprintf(w, "Stakeholders (%d):\n", len(s.Stakeholders))
	for _, st := range s.Stakeholders {
		fmt.Fprintf(w, "  %s  %s (%s)\n", st.ID, st.Name, st.Role)
	}
}
