package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/project"
	"github.com/mfedotov/brdforge/internal/store"
)

const conflictVault = `{
  "whatsapp": [
    {
      "thread_id": "wa_1",
      "name": "Budget Talk",
      "is_relevant": true,
      "messages": [
        {"sender": "Maria Santos (CFO)", "text": "we are overleveraged, $45k is the hard limit"},
        {"sender": "Alex Chen (CEO)", "text": "let's find a middle ground, $55k total, but we cut the external audit"}
      ]
    }
  ]
}`

const quietVault = `{
  "gmail": [
    {"thread_id": "g_1", "subject": "Kickoff", "from": "dana@example.com", "content": "Kickoff is scheduled", "is_relevant": true}
  ]
}`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	machine := project.NewMachine(store.NewMemory(),
		project.WithClock(func() time.Time {
			return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
		}),
	)
	return NewRunner(machine, false, io.Discard)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRun_PendingWritesSkeleton(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeFile(t, filepath.Join(dir, "checkout.vault.json"), conflictVault)

	outcome, err := newTestRunner(t).Run(context.Background(), Request{
		VaultPath: vaultPath,
		Author:    brd.Author{Name: "Dana Kim"},
		OutputDir: dir,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Pending {
		t.Fatal("expected pending outcome at the human gate")
	}
	if outcome.State.Metadata.CurrentStep != model.StepConflicts {
		t.Errorf("project must park at step 2, got %d", outcome.State.Metadata.CurrentStep)
	}

	data, err := os.ReadFile(outcome.SkeletonPath)
	if err != nil {
		t.Fatalf("skeleton not written: %v", err)
	}
	if !strings.Contains(string(data), "conflict_1") {
		t.Errorf("skeleton missing conflict entry:\n%s", data)
	}
	if !strings.Contains(string(data), "$45k is the hard limit") {
		t.Error("skeleton must list each conflict's options for the reviewer")
	}
}

func TestRun_WithResolutions(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeFile(t, filepath.Join(dir, "checkout.vault.json"), conflictVault)
	resPath := writeFile(t, filepath.Join(dir, "checkout.resolutions.yaml"), `resolutions:
  conflict_1:
    select: fact_2
    comment: "CEO total stands"
`)

	outcome, err := newTestRunner(t).Run(context.Background(), Request{
		VaultPath:       vaultPath,
		Author:          brd.Author{Name: "Dana Kim", Role: "PM"},
		ResolutionsPath: resPath,
		OutputDir:       dir,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Pending {
		t.Fatal("resolved run must not stop at the human gate")
	}

	state := outcome.State
	if state.Metadata.Status != model.StatusCompleted {
		t.Errorf("expected completed project, got %s", state.Metadata.Status)
	}
	if state.ConflictsData[0].Comment != "CEO total stands" {
		t.Errorf("resolution comment lost, got %q", state.ConflictsData[0].Comment)
	}
	if state.BRDData == nil {
		t.Fatal("document not generated")
	}

	if len(outcome.Outputs) != 1 {
		t.Fatalf("expected one default output, got %v", outcome.Outputs)
	}
	md, err := os.ReadFile(outcome.Outputs[0])
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(md), "# checkout") {
		t.Errorf("markdown output missing project heading:\n%.200s", md)
	}
}

func TestRun_MissingSelectionReportsPrecondition(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeFile(t, filepath.Join(dir, "checkout.vault.json"), conflictVault)
	resPath := writeFile(t, filepath.Join(dir, "checkout.resolutions.yaml"), `resolutions:
  conflict_1:
    select: ""
`)

	_, err := newTestRunner(t).Run(context.Background(), Request{
		VaultPath:       vaultPath,
		ResolutionsPath: resPath,
		OutputDir:       dir,
	})
	if err == nil || !strings.Contains(err.Error(), project.ErrPreconditionNotMet.Error()) {
		t.Errorf("expected precondition failure, got %v", err)
	}
}

func TestRun_NoConflicts(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeFile(t, filepath.Join(dir, "quiet.vault.json"), quietVault)

	outcome, err := newTestRunner(t).Run(context.Background(), Request{
		VaultPath: vaultPath,
		Author:    brd.Author{Name: "Dana Kim"},
		OutputDir: dir,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Pending {
		t.Fatal("a conflict-free vault must complete in one run")
	}
	if outcome.State.Metadata.Status != model.StatusCompleted {
		t.Errorf("expected completed project, got %s", outcome.State.Metadata.Status)
	}
}

func TestRun_ExplicitOutputs(t *testing.T) {
	dir := t.TempDir()
	vaultPath := writeFile(t, filepath.Join(dir, "quiet.vault.json"), quietVault)

	jsonPath := filepath.Join(dir, "out.json")
	htmlPath := filepath.Join(dir, "out.html")
	outcome, err := newTestRunner(t).Run(context.Background(), Request{
		VaultPath: vaultPath,
		Author:    brd.Author{Name: "Dana Kim"},
		JSONPath:  jsonPath,
		HTMLPath:  htmlPath,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcome.Outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %v", outcome.Outputs)
	}
	for _, path := range []string{jsonPath, htmlPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output %s not written: %v", path, err)
		}
	}
}

func TestBatch_OneResultPerInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vault.json"), quietVault)
	writeFile(t, filepath.Join(dir, "b.vault.json"), conflictVault)
	writeFile(t, filepath.Join(dir, "b.resolutions.yaml"), `resolutions:
  conflict_1:
    select: fact_1
`)
	writeFile(t, filepath.Join(dir, "c.vault.json"), "{not valid json")
	writeFile(t, filepath.Join(dir, "ignored.txt"), "not a vault")

	processor := NewBatchProcessor(newTestRunner(t), model.ConcurrencyConfig{
		Workers:           2,
		ProjectsPerSecond: 100,
		Burst:             2,
	})
	results, err := processor.Process(context.Background(), dir, brd.Author{Name: "Dana Kim"}, dir)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results (one per vault), got %d", len(results))
	}

	byBase := map[string]*BatchResult{}
	for _, r := range results {
		byBase[VaultBase(r.VaultPath)] = r
	}
	if byBase["a"].Error != nil {
		t.Errorf("vault a: %v", byBase["a"].Error)
	}
	if byBase["b"].Error != nil || byBase["b"].Outcome.Pending {
		t.Errorf("vault b must complete via its sibling resolutions file, got %+v", byBase["b"])
	}
	if byBase["c"].Error == nil {
		t.Error("malformed top-level vault must fail its own run")
	}
}

func TestFindVaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.vault.yaml"), "")
	writeFile(t, filepath.Join(dir, "a.vault.json"), "")
	writeFile(t, filepath.Join(dir, "notes.md"), "")

	vaults, err := FindVaults(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(vaults) != 2 {
		t.Fatalf("expected 2 vaults, got %v", vaults)
	}
	if filepath.Base(vaults[0]) != "a.vault.json" {
		t.Errorf("vault list must be sorted, got %v", vaults)
	}
}

func TestVaultBase(t *testing.T) {
	cases := map[string]string{
		"checkout.vault.json":       "checkout",
		"/tmp/x/checkout.vault.yml": "checkout",
		"plain.json":                "plain",
		"checkout.vault.yaml":       "checkout",
	}
	for in, want := range cases {
		if got := VaultBase(in); got != want {
			t.Errorf("VaultBase(%q) = %q, want %q", in, got, want)
		}
	}
}
