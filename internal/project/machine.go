// Package project implements the step-gated state machine that sequences the
// pipeline and persists project state after every mutation.
package project

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/conflict"
	"github.com/mfedotov/brdforge/internal/extract"
	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/store"
	"github.com/mfedotov/brdforge/internal/summary"
	"github.com/mfedotov/brdforge/internal/vault"
)

// keyPrefix namespaces project records in the store.
const keyPrefix = "project_"

var (
	// ErrNotFound reports a project id with no stored state. Fatal to the
	// current operation; the caller must not retry with the same id.
	ErrNotFound = errors.New("project not found")

	// ErrPreconditionNotMet reports a transition attempted before its
	// predecessor completed. Recoverable: state is unchanged and the caller
	// may retry after satisfying the precondition.
	ErrPreconditionNotMet = errors.New("complete previous steps first")
)

// Machine sequences the four pipeline steps for stored projects. All
// mutations run under a per-project mutex and persist the full state before
// returning.
type Machine struct {
	store store.Store
	now   func() time.Time
	newID func() string
	delay time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock fixes the machine's clock.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides project id generation.
func WithIDGenerator(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

// WithStepDelay inserts a cosmetic, context-cancelable pause before each
// step transition.
func WithStepDelay(d time.Duration) Option {
	return func(m *Machine) { m.delay = d }
}

// NewMachine creates a machine over the given store.
func NewMachine(s store.Store, opts ...Option) *Machine {
	m := &Machine{
		store: s,
		now:   time.Now,
		newID: newULID,
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newULID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// lock returns the mutex guarding one project's state.
func (m *Machine) lock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Create initiates a project at step 1 with empty stage data and persists it.
func (m *Machine) Create(name string, author brd.Author) (*model.ProjectState, error) {
	now := m.now()
	state := &model.ProjectState{
		Metadata: model.ProjectMetadata{
			ID:             m.newID(),
			Name:           name,
			Author:         author.Name,
			Role:           author.Role,
			Status:         model.StatusActive,
			CurrentStep:    model.StepExtraction,
			CompletedSteps: nil,
			CreatedAt:      now,
			LastModified:   now,
		},
	}
	if err := m.persist(state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get loads a project's state.
func (m *Machine) Get(id string) (*model.ProjectState, error) {
	l := m.lock(id)
	l.Lock()
	defer l.Unlock()
	return m.load(id)
}

// List returns metadata for every stored project, ordered by key.
func (m *Machine) List() ([]model.ProjectMetadata, error) {
	keys, err := m.store.Keys(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	out := make([]model.ProjectMetadata, 0, len(keys))
	for _, key := range keys {
		id := key[len(keyPrefix):]
		state, err := m.load(id)
		if err != nil {
			return nil, err
		}
		out = append(out, state.Metadata)
	}
	return out, nil
}

// Delete removes a project's stored state.
func (m *Machine) Delete(id string) error {
	l := m.lock(id)
	l.Lock()
	defer l.Unlock()

	if _, err := m.load(id); err != nil {
		return err
	}
	if err := m.store.Delete(keyPrefix + id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// EnterExtraction runs fact extraction on first entry to step 1. Re-entering
// an already-extracted project is an idempotent reload: existing facts and
// their ids are untouched.
func (m *Machine) EnterExtraction(ctx context.Context, id string, v *vault.Vault) (*model.ProjectState, error) {
	return m.transition(ctx, id, func(state *model.ProjectState) error {
		if len(state.ExtractionData) > 0 {
			return nil
		}
		state.ExtractionData = extract.NewExtractorAt(m.now).Extract(v)
		return nil
	})
}

// RemoveFact drops one extracted fact before step 1 completes. Rejected once
// conflicts have been detected over the extraction.
func (m *Machine) RemoveFact(ctx context.Context, id, factID string) (*model.ProjectState, error) {
	return m.transition(ctx, id, func(state *model.ProjectState) error {
		if state.Metadata.CompletedSteps.Contains(model.StepExtraction) {
			return fmt.Errorf("extraction already complete: %w", ErrPreconditionNotMet)
		}
		facts := state.ExtractionData[:0]
		found := false
		for _, f := range state.ExtractionData {
			if f.ID == factID {
				found = true
				continue
			}
			facts = append(facts, f)
		}
		if !found {
			return fmt.Errorf("fact %s: %w", factID, ErrNotFound)
		}
		state.ExtractionData = facts
		return nil
	})
}

// CompleteExtraction detects conflicts over the extracted facts and advances
// to step 2.
func (m *Machine) CompleteExtraction(ctx context.Context, id string) (*model.ProjectState, error) {
	return m.advance(ctx, id, func(state *model.ProjectState) error {
		if state.Metadata.CurrentStep != model.StepExtraction {
			return ErrPreconditionNotMet
		}
		state.ConflictsData = conflict.Detect(state.ExtractionData)
		state.Metadata.CompletedSteps = state.Metadata.CompletedSteps.With(model.StepExtraction)
		state.Metadata.CurrentStep = model.StepConflicts
		return nil
	})
}

// SelectOption records the chosen fact for one conflict without resolving it.
func (m *Machine) SelectOption(ctx context.Context, id, conflictID, factID string) (*model.ProjectState, error) {
	return m.transition(ctx, id, func(state *model.ProjectState) error {
		if err := conflict.SelectOption(state.ConflictsData, conflictID, factID); err != nil {
			return err
		}
		return nil
	})
}

// ResolveConflicts marks every conflict resolved with the given comments,
// builds the summary, and advances to step 3. Precondition: every conflict
// has a selected option.
func (m *Machine) ResolveConflicts(ctx context.Context, id string, comments map[string]string) (*model.ProjectState, error) {
	return m.advance(ctx, id, func(state *model.ProjectState) error {
		if state.Metadata.CurrentStep != model.StepConflicts {
			return ErrPreconditionNotMet
		}
		if !conflict.AllSelected(state.ConflictsData) {
			return fmt.Errorf("unselected conflict options: %w", ErrPreconditionNotMet)
		}
		if err := conflict.ResolveAll(state.ConflictsData, comments); err != nil {
			return err
		}
		state.SummaryData = summary.Build(state.ExtractionData, state.ConflictsData)
		state.Metadata.CompletedSteps = state.Metadata.CompletedSteps.With(model.StepConflicts)
		state.Metadata.CurrentStep = model.StepSummary
		return nil
	})
}

// UpdateSummary applies a caller-supplied edit to the summary between steps
// 3 and 4 and persists the result.
func (m *Machine) UpdateSummary(ctx context.Context, id string, edit func(*model.Summary)) (*model.ProjectState, error) {
	return m.transition(ctx, id, func(state *model.ProjectState) error {
		if state.SummaryData == nil {
			return fmt.Errorf("summary not built: %w", ErrPreconditionNotMet)
		}
		if state.Metadata.CompletedSteps.Contains(model.StepBRD) {
			return fmt.Errorf("project finalized: %w", ErrPreconditionNotMet)
		}
		edit(state.SummaryData)
		return nil
	})
}

// GenerateDocument builds the BRD from the current summary and advances to
// step 4. Regenerating from an edited summary replaces the document.
func (m *Machine) GenerateDocument(ctx context.Context, id string) (*model.ProjectState, error) {
	return m.advance(ctx, id, func(state *model.ProjectState) error {
		if state.Metadata.CurrentStep != model.StepSummary && state.Metadata.CurrentStep != model.StepBRD {
			return ErrPreconditionNotMet
		}
		if state.SummaryData == nil {
			return fmt.Errorf("summary not built: %w", ErrPreconditionNotMet)
		}
		builder := brd.NewBuilderAt(m.now)
		author := brd.Author{Name: state.Metadata.Author, Role: state.Metadata.Role}
		state.BRDData = builder.Build(state.SummaryData, state.Metadata.Name, author)
		state.Metadata.CompletedSteps = state.Metadata.CompletedSteps.With(model.StepSummary)
		state.Metadata.CurrentStep = model.StepBRD
		return nil
	})
}

// Finalize marks the project completed. Terminal: no further transitions.
func (m *Machine) Finalize(ctx context.Context, id string) (*model.ProjectState, error) {
	return m.advance(ctx, id, func(state *model.ProjectState) error {
		if state.Metadata.CurrentStep != model.StepBRD || state.BRDData == nil {
			return ErrPreconditionNotMet
		}
		state.Metadata.CompletedSteps = state.Metadata.CompletedSteps.With(model.StepBRD)
		state.Metadata.Status = model.StatusCompleted
		completed := m.now()
		state.Metadata.CompletedAt = &completed
		return nil
	})
}

// GoToStep navigates to step n. Permitted only when n is at or behind the
// current step, or the preceding step is complete; otherwise the request is
// rejected and state is unchanged.
func (m *Machine) GoToStep(ctx context.Context, id string, n model.Step) (*model.ProjectState, error) {
	return m.transition(ctx, id, func(state *model.ProjectState) error {
		if !n.Valid() {
			return fmt.Errorf("step %d out of range: %w", n, ErrPreconditionNotMet)
		}
		if n > state.Metadata.CurrentStep && !state.Metadata.CompletedSteps.Contains(n-1) {
			return ErrPreconditionNotMet
		}
		state.Metadata.CurrentStep = n
		return nil
	})
}

// advance is transition preceded by the cosmetic step delay.
func (m *Machine) advance(ctx context.Context, id string, mutate func(*model.ProjectState) error) (*model.ProjectState, error) {
	if err := m.pause(ctx); err != nil {
		return nil, err
	}
	return m.transition(ctx, id, mutate)
}

// transition loads, mutates, and persists one project under its lock. The
// write happens after the in-memory mutation and before the transition is
// reported complete; a rejected mutation leaves the stored state untouched.
func (m *Machine) transition(_ context.Context, id string, mutate func(*model.ProjectState) error) (*model.ProjectState, error) {
	l := m.lock(id)
	l.Lock()
	defer l.Unlock()

	state, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(state); err != nil {
		return nil, err
	}
	state.Metadata.LastModified = m.now()
	if err := m.persist(state); err != nil {
		return nil, err
	}
	return state, nil
}

// pause applies the cosmetic step delay, honoring cancellation.
func (m *Machine) pause(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Machine) load(id string) (*model.ProjectState, error) {
	data, ok, err := m.store.Get(keyPrefix + id)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	var state model.ProjectState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &state, nil
}

func (m *Machine) persist(state *model.ProjectState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", state.Metadata.ID, err)
	}
	if err := m.store.Set(keyPrefix+state.Metadata.ID, data); err != nil {
		return fmt.Errorf("persist project %s: %w", state.Metadata.ID, err)
	}
	return nil
}
