// Package conflict detects contradictions between extracted facts and
// carries the mutation contract used to resolve them.
package conflict

import (
	"fmt"
	"math"

	"github.com/mfedotov/brdforge/internal/model"
)

// Detect scans facts for contradicting pairs along five categories,
// evaluated in fixed order: budget, compliance, timeline, priority,
// technology. An unordered fact pair consumed by one pass is skipped by all
// later passes. Conflicts are returned in discovery order and come back
// unresolved.
func Detect(facts []model.Fact) []model.Conflict {
	d := &detector{consumed: make(map[string]bool)}

	conflicts := d.budgetPass(facts)
	for _, rule := range keywordRules {
		if c, ok := d.keywordPass(facts, rule); ok {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts
}

// detector tracks consumed pairs and the run-local conflict counter.
type detector struct {
	consumed map[string]bool
	lastID   int
}

func (d *detector) newConflict(ctype model.ConflictType, a, b model.Fact, description string) model.Conflict {
	d.lastID++
	return model.Conflict{
		ID:          fmt.Sprintf("conflict_%d", d.lastID),
		Type:        ctype,
		FactA:       a,
		FactB:       b,
		Description: description,
	}
}

// budgetPass pairs facts whose first currency amounts differ by more than
// the threshold. Each outer fact pairs with at most one partner; the pass
// as a whole may emit several conflicts.
func (d *detector) budgetPass(facts []model.Fact) []model.Conflict {
	filtered := filterFacts(facts, budgetFilter)

	var out []model.Conflict
	for i := 0; i < len(filtered); i++ {
		for j := i + 1; j < len(filtered); j++ {
			key := pairKey(filtered[i].ID, filtered[j].ID)
			if d.consumed[key] {
				continue
			}
			amountsA := ExtractAmounts(filtered[i].Content)
			amountsB := ExtractAmounts(filtered[j].Content)
			if len(amountsA) == 0 || len(amountsB) == 0 {
				continue
			}
			if math.Abs(amountsA[0]-amountsB[0]) <= budgetThreshold {
				continue
			}
			out = append(out, d.newConflict(model.ConflictBudget, filtered[i], filtered[j],
				fmt.Sprintf("Budget discrepancy: %s vs %s",
					FormatCurrency(amountsA[0]), FormatCurrency(amountsB[0]))))
			d.consumed[key] = true
			break
		}
	}
	return out
}

// keywordPass scans pairs for one category and stops at the first
// qualifying pair.
func (d *detector) keywordPass(facts []model.Fact, rule keywordRule) (model.Conflict, bool) {
	filtered := filterFacts(facts, rule.filter)

	for i := 0; i < len(filtered); i++ {
		for j := i + 1; j < len(filtered); j++ {
			key := pairKey(filtered[i].ID, filtered[j].ID)
			if d.consumed[key] {
				continue
			}
			hit := rule.first.matches(filtered[i].Content) && rule.second.matches(filtered[j].Content)
			if !hit && rule.bothOrders {
				hit = rule.first.matches(filtered[j].Content) && rule.second.matches(filtered[i].Content)
			}
			if !hit {
				continue
			}
			d.consumed[key] = true
			return d.newConflict(rule.ctype, filtered[i], filtered[j], rule.description), true
		}
	}
	return model.Conflict{}, false
}

// pairKey builds the unordered-pair key used for pair consumption.
func pairKey(idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return idA + "_" + idB
}
