package conflict

import (
	"strings"

	"github.com/mfedotov/brdforge/internal/model"
)

// term matches when all of its substrings appear in the content
// (case-insensitive).
type term []string

// signal matches when any of its terms match.
type signal []term

func (s signal) matches(content string) bool {
	lc := strings.ToLower(content)
	for _, t := range s {
		hit := true
		for _, sub := range t {
			if !strings.Contains(lc, sub) {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	return false
}

// keywordRule describes one category pass: a prefilter keyword set and an
// asymmetric pair of signals. Each keyword pass stops after its first
// qualifying pair, so these categories yield at most one conflict per run.
// bothOrders controls whether the signals are also tried swapped.
type keywordRule struct {
	ctype       model.ConflictType
	filter      []string
	first       signal
	second      signal
	bothOrders  bool
	description string
}

// keywordRules are evaluated in this fixed order, after the budget pass.
var keywordRules = []keywordRule{
	{
		ctype:       model.ConflictCompliance,
		filter:      []string{"audit", "security", "compliance"},
		first:       signal{{"skip"}, {"cut"}, {"no audit"}},
		second:      signal{{"critical"}, {"required"}, {"must"}},
		bothOrders:  true,
		description: "Security audit requirement conflict",
	},
	{
		ctype:       model.ConflictTimeline,
		filter:      []string{"launch", "deadline", "friday", "delay", "refactor", "unstable"},
		first:       signal{{"non-negotiable"}, {"locked"}, {"friday"}},
		second:      signal{{"need", "days"}, {"refactor"}, {"unstable"}, {"crash"}},
		description: "Launch timeline vs technical readiness conflict",
	},
	{
		ctype:       model.ConflictPriority,
		filter:      []string{"feature", "dark mode", "ui", "hipaa", "sprint"},
		first:       signal{{"priority"}, {"dealbreaker"}, {"top"}},
		second:      signal{{"secondary"}, {"packed"}, {"capacity"}, {"locking"}},
		description: "Feature priority conflict",
	},
	{
		ctype:       model.ConflictTechnology,
		filter:      []string{"ffmpeg", "google maps", "openstreetmap", "cve", "vulnerability"},
		first:       signal{{"faster"}, {"10x"}, {"free"}},
		second:      signal{{"cve"}, {"breach"}, {"vulnerability"}},
		description: "Technology choice: Performance vs Security",
	},
}

// Budget pass parameters. Unlike the keyword passes, the budget pass may
// emit one conflict per outer fact that finds a partner; the asymmetry is
// deliberate and kept pending product review.
var budgetFilter = []string{"$", "budget", "cost"}

const budgetThreshold = 5000

// matchesFilter reports whether content contains any of the category's
// prefilter keywords.
func matchesFilter(content string, keywords []string) bool {
	lc := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lc, kw) {
			return true
		}
	}
	return false
}

// filterFacts returns the facts whose content passes the category prefilter,
// preserving input order.
func filterFacts(facts []model.Fact, keywords []string) []model.Fact {
	var out []model.Fact
	for _, f := range facts {
		if matchesFilter(f.Content, keywords) {
			out = append(out, f)
		}
	}
	return out
}
