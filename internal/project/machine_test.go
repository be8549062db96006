package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/store"
	"github.com/mfedotov/brdforge/internal/vault"
)

func testClock() time.Time {
	return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
}

func newTestMachine(t *testing.T, s store.Store) *Machine {
	t.Helper()
	seq := 0
	return NewMachine(s,
		WithClock(testClock),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("p%d", seq)
		}),
	)
}

func budgetVault() *vault.Vault {
	return &vault.Vault{
		WhatsApp: []vault.Thread{
			{
				ThreadID:   "wa_1",
				Name:       "Budget Talk",
				IsRelevant: true,
				Messages: []vault.Message{
					{Sender: "Maria Santos (CFO)", Text: "we are overleveraged, $45k is the hard limit"},
					{Sender: "Alex Chen (CEO)", Text: "let's find a middle ground, $55k total, but we cut the external audit"},
				},
			},
		},
	}
}

func TestCreate(t *testing.T) {
	m := newTestMachine(t, store.NewMemory())

	state, err := m.Create("Checkout Revamp", brd.Author{Name: "Dana Kim", Role: "PM"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	md := state.Metadata
	if md.ID != "p1" || md.Name != "Checkout Revamp" || md.Author != "Dana Kim" {
		t.Errorf("unexpected metadata %+v", md)
	}
	if md.Status != model.StatusActive || md.CurrentStep != model.StepExtraction {
		t.Errorf("new project must start active at step 1, got %+v", md)
	}
	if len(md.CompletedSteps) != 0 {
		t.Errorf("new project must have no completed steps")
	}

	// Creation persists immediately.
	loaded, err := m.Get("p1")
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if loaded.Metadata.Name != "Checkout Revamp" {
		t.Errorf("persisted name %q", loaded.Metadata.Name)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := newTestMachine(t, store.NewMemory())
	if _, err := m.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEnterExtraction_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})

	first, err := m.EnterExtraction(ctx, state.Metadata.ID, budgetVault())
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if len(first.ExtractionData) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(first.ExtractionData))
	}

	// Re-entry with a different vault must not change facts or ids.
	second, err := m.EnterExtraction(ctx, state.Metadata.ID, &vault.Vault{})
	if err != nil {
		t.Fatalf("re-enter: %v", err)
	}
	if len(second.ExtractionData) != 2 {
		t.Errorf("re-entry changed extraction, got %d facts", len(second.ExtractionData))
	}
	if second.ExtractionData[0].ID != first.ExtractionData[0].ID {
		t.Error("re-entry changed fact ids")
	}
}

func TestRemoveFact(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})
	id := state.Metadata.ID
	m.EnterExtraction(ctx, id, budgetVault())

	after, err := m.RemoveFact(ctx, id, "fact_1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(after.ExtractionData) != 1 || after.ExtractionData[0].ID != "fact_2" {
		t.Errorf("unexpected facts after removal: %+v", after.ExtractionData)
	}

	if _, err := m.RemoveFact(ctx, id, "fact_99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown fact: expected ErrNotFound, got %v", err)
	}

	// Once extraction is complete, removal is rejected.
	if _, err := m.CompleteExtraction(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := m.RemoveFact(ctx, id, "fact_2"); !errors.Is(err, ErrPreconditionNotMet) {
		t.Errorf("expected ErrPreconditionNotMet after completion, got %v", err)
	}
}

func TestCompleteExtraction(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})
	id := state.Metadata.ID
	m.EnterExtraction(ctx, id, budgetVault())

	after, err := m.CompleteExtraction(ctx, id)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(after.ConflictsData) != 1 {
		t.Fatalf("expected 1 budget conflict, got %d", len(after.ConflictsData))
	}
	if after.Metadata.CurrentStep != model.StepConflicts {
		t.Errorf("expected step 2, got %d", after.Metadata.CurrentStep)
	}
	if !after.Metadata.CompletedSteps.Contains(model.StepExtraction) {
		t.Error("step 1 must be marked complete")
	}

	// Completing twice is rejected.
	if _, err := m.CompleteExtraction(ctx, id); !errors.Is(err, ErrPreconditionNotMet) {
		t.Errorf("expected ErrPreconditionNotMet on re-completion, got %v", err)
	}
}

func TestResolveConflicts_RequiresSelections(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})
	id := state.Metadata.ID
	m.EnterExtraction(ctx, id, budgetVault())
	m.CompleteExtraction(ctx, id)

	if _, err := m.ResolveConflicts(ctx, id, nil); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("expected ErrPreconditionNotMet, got %v", err)
	}

	// The rejected transition left stored state untouched.
	loaded, _ := m.Get(id)
	if loaded.Metadata.CurrentStep != model.StepConflicts {
		t.Errorf("rejected resolve changed step to %d", loaded.Metadata.CurrentStep)
	}
	if loaded.SummaryData != nil {
		t.Error("rejected resolve must not build a summary")
	}
}

func TestGoToStep_Gating(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})
	id := state.Metadata.ID
	m.EnterExtraction(ctx, id, budgetVault())
	m.CompleteExtraction(ctx, id)

	// completedSteps = {1}, currentStep = 2: jumping to 3 must be rejected
	// without touching state.
	if _, err := m.GoToStep(ctx, id, model.StepSummary); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("expected ErrPreconditionNotMet, got %v", err)
	}
	loaded, _ := m.Get(id)
	if loaded.Metadata.CurrentStep != model.StepConflicts {
		t.Errorf("rejected jump changed step to %d", loaded.Metadata.CurrentStep)
	}

	// Moving backward is always allowed.
	back, err := m.GoToStep(ctx, id, model.StepExtraction)
	if err != nil {
		t.Fatalf("back-navigation: %v", err)
	}
	if back.Metadata.CurrentStep != model.StepExtraction {
		t.Errorf("expected step 1, got %d", back.Metadata.CurrentStep)
	}

	if _, err := m.GoToStep(ctx, id, model.Step(7)); !errors.Is(err, ErrPreconditionNotMet) {
		t.Errorf("out-of-range step must be rejected, got %v", err)
	}
}

// TestWalkthrough drives one project through all four steps on every store
// driver.
func TestWalkthrough(t *testing.T) {
	sq, err := store.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	drivers := map[string]store.Store{
		"memory": store.NewMemory(),
		"disk":   store.NewDisk(t.TempDir()),
		"sqlite": sq,
	}

	for name, s := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := newTestMachine(t, s)

			state, err := m.Create("Checkout Revamp", brd.Author{Name: "Dana Kim", Role: "PM"})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			id := state.Metadata.ID

			if _, err := m.EnterExtraction(ctx, id, budgetVault()); err != nil {
				t.Fatalf("enter extraction: %v", err)
			}
			after, err := m.CompleteExtraction(ctx, id)
			if err != nil {
				t.Fatalf("complete extraction: %v", err)
			}
			if len(after.ConflictsData) != 1 {
				t.Fatalf("expected 1 conflict, got %d", len(after.ConflictsData))
			}

			conflictID := after.ConflictsData[0].ID
			if _, err := m.SelectOption(ctx, id, conflictID, "fact_2"); err != nil {
				t.Fatalf("select option: %v", err)
			}
			after, err = m.ResolveConflicts(ctx, id, map[string]string{conflictID: "CEO total stands"})
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if after.SummaryData == nil || after.Metadata.CurrentStep != model.StepSummary {
				t.Fatal("resolution must build the summary and advance to step 3")
			}

			after, err = m.GenerateDocument(ctx, id)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if after.BRDData == nil || after.Metadata.CurrentStep != model.StepBRD {
				t.Fatal("generation must build the document and advance to step 4")
			}
			if after.BRDData.Metadata.Author != "Dana Kim" {
				t.Errorf("document author %q", after.BRDData.Metadata.Author)
			}

			after, err = m.Finalize(ctx, id)
			if err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if after.Metadata.Status != model.StatusCompleted || after.Metadata.CompletedAt == nil {
				t.Error("finalize must mark the project completed with a timestamp")
			}
			for _, step := range []model.Step{1, 2, 3, 4} {
				if !after.Metadata.CompletedSteps.Contains(step) {
					t.Errorf("step %d missing from completed set", step)
				}
			}

			// The terminal state round-trips through the store.
			loaded, err := m.Get(id)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if loaded.Metadata.Status != model.StatusCompleted || loaded.BRDData == nil {
				t.Error("persisted state lost the terminal snapshot")
			}
		})
	}
}

func TestUpdateSummary(t *testing.T) {
	ctx := context.Background()
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})
	id := state.Metadata.ID

	// Before a summary exists, edits are rejected.
	if _, err := m.UpdateSummary(ctx, id, func(*model.Summary) {}); !errors.Is(err, ErrPreconditionNotMet) {
		t.Fatalf("expected ErrPreconditionNotMet, got %v", err)
	}

	m.EnterExtraction(ctx, id, budgetVault())
	m.CompleteExtraction(ctx, id)
	after, _ := m.Get(id)
	m.SelectOption(ctx, id, after.ConflictsData[0].ID, "fact_2")
	m.ResolveConflicts(ctx, id, nil)

	after, err := m.UpdateSummary(ctx, id, func(s *model.Summary) {
		s.KeyDecisions = append(s.KeyDecisions, model.Decision{ID: "decision_99", Title: "Manual addition"})
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	found := false
	for _, d := range after.SummaryData.KeyDecisions {
		if d.ID == "decision_99" {
			found = true
		}
	}
	if !found {
		t.Error("edit not applied")
	}

	// Edits persist.
	loaded, _ := m.Get(id)
	if len(loaded.SummaryData.KeyDecisions) != len(after.SummaryData.KeyDecisions) {
		t.Error("edit not persisted")
	}
}

func TestList(t *testing.T) {
	m := newTestMachine(t, store.NewMemory())
	m.Create("Alpha", brd.Author{Name: "Dana Kim"})
	m.Create("Beta", brd.Author{Name: "Dana Kim"})

	metas, err := m.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(metas))
	}
}

func TestDelete(t *testing.T) {
	m := newTestMachine(t, store.NewMemory())
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})

	if err := m.Delete(state.Metadata.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(state.Metadata.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(state.Metadata.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting a missing project: expected ErrNotFound, got %v", err)
	}
}

func TestStepDelay_Cancelable(t *testing.T) {
	m := NewMachine(store.NewMemory(), WithClock(testClock), WithStepDelay(time.Second))
	state, _ := m.Create("P", brd.Author{Name: "Dana Kim"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.CompleteExtraction(ctx, state.Metadata.ID); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
