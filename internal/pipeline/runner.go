// Package pipeline wires the extraction, conflict, summary and document
// stages into end-to-end runs over vault files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/project"
	"github.com/mfedotov/brdforge/internal/render"
	"github.com/mfedotov/brdforge/internal/vault"
)

// Request describes one pipeline run.
type Request struct {
	VaultPath       string
	Name            string // defaults to the vault file's base name
	Author          brd.Author
	ResolutionsPath string // empty: stop at the human gate when conflicts exist

	OutputDir    string
	JSONPath     string // explicit output paths; empty means skip
	MarkdownPath string
	HTMLPath     string
}

// Outcome is the result of one run.
type Outcome struct {
	ProjectID    string
	State        *model.ProjectState
	Pending      bool   // stopped at step 2 awaiting resolutions
	SkeletonPath string // written when Pending
	Outputs      []string
}

// Runner drives the state machine through a full pipeline run.
type Runner struct {
	machine *project.Machine
	footer  bool
	log     io.Writer
}

// NewRunner creates a runner over the given machine. Progress goes to log;
// pass io.Discard to silence it.
func NewRunner(machine *project.Machine, includeFooter bool, log io.Writer) *Runner {
	if log == nil {
		log = io.Discard
	}
	return &Runner{machine: machine, footer: includeFooter, log: log}
}

// Run executes the four-step pipeline for one vault. When conflicts are
// detected and no resolutions file is given, it writes a resolutions
// skeleton and returns a pending outcome with the project parked at step 2.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	v, err := vault.Load(req.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("load vault: %w", err)
	}

	name := req.Name
	if name == "" {
		name = VaultBase(req.VaultPath)
	}

	state, err := r.machine.Create(name, req.Author)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	id := state.Metadata.ID
	fmt.Fprintf(r.log, "project %s (%s)\n", id, name)

	if _, err := r.machine.EnterExtraction(ctx, id, v); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	state, err = r.machine.CompleteExtraction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}
	fmt.Fprintf(r.log, "step 1: %d facts extracted\n", len(state.ExtractionData))
	fmt.Fprintf(r.log, "step 2: %d conflicts detected\n", len(state.ConflictsData))

	var resolutions *ResolutionsFile
	if req.ResolutionsPath != "" {
		if resolutions, err = LoadResolutions(req.ResolutionsPath); err != nil {
			return nil, err
		}
	}

	if len(state.ConflictsData) > 0 {
		if resolutions == nil {
			skeleton := filepath.Join(r.outputDir(req), VaultBase(req.VaultPath)+".resolutions.yaml")
			if err := WriteSkeleton(skeleton, state.ConflictsData); err != nil {
				return nil, err
			}
			fmt.Fprintf(r.log, "conflicts await resolution; skeleton written to %s\n", skeleton)
			return &Outcome{ProjectID: id, State: state, Pending: true, SkeletonPath: skeleton}, nil
		}
		if err := r.applyResolutions(ctx, id, resolutions, state.ConflictsData); err != nil {
			return nil, err
		}
	}

	comments := map[string]string{}
	if resolutions != nil {
		for conflictID, res := range resolutions.Resolutions {
			comments[conflictID] = res.Comment
		}
	}
	state, err = r.machine.ResolveConflicts(ctx, id, comments)
	if err != nil {
		return nil, fmt.Errorf("resolve conflicts: %w", err)
	}
	fmt.Fprintf(r.log, "step 3: summary built (%d decisions, %d risks, %d requirements, %d stakeholders)\n",
		len(state.SummaryData.KeyDecisions), len(state.SummaryData.Risks),
		len(state.SummaryData.Requirements), len(state.SummaryData.Stakeholders))

	state, err = r.machine.GenerateDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}
	state, err = r.machine.Finalize(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finalize: %w", err)
	}
	fmt.Fprintf(r.log, "step 4: document generated, project completed\n")

	outputs, err := r.writeOutputs(req, state.BRDData)
	if err != nil {
		return nil, err
	}
	return &Outcome{ProjectID: id, State: state, Outputs: outputs}, nil
}

// applyResolutions selects each conflict's fact from the resolutions file.
// A conflict missing from the file is left unselected, so the subsequent
// resolve step reports the unmet precondition.
func (r *Runner) applyResolutions(ctx context.Context, id string, file *ResolutionsFile, conflicts []model.Conflict) error {
	for _, c := range conflicts {
		res, ok := file.Resolutions[c.ID]
		if !ok || res.Select == "" {
			continue
		}
		if _, err := r.machine.SelectOption(ctx, id, c.ID, res.Select); err != nil {
			return fmt.Errorf("apply resolution for %s: %w", c.ID, err)
		}
	}
	return nil
}

// writeOutputs renders the document to every requested format. With no
// explicit paths, Markdown goes to the output directory.
func (r *Runner) writeOutputs(req Request, doc *model.BRD) ([]string, error) {
	opts := render.Options{IncludeFooter: r.footer}

	mdPath := req.MarkdownPath
	if mdPath == "" && req.JSONPath == "" && req.HTMLPath == "" {
		mdPath = filepath.Join(r.outputDir(req), VaultBase(req.VaultPath)+".brd.md")
	}

	var outputs []string
	if mdPath != "" {
		if err := os.WriteFile(mdPath, []byte(render.Markdown(doc, opts)), 0o644); err != nil {
			return nil, fmt.Errorf("write markdown: %w", err)
		}
		outputs = append(outputs, mdPath)
	}
	if req.JSONPath != "" {
		data, err := render.JSON(doc)
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		if err := os.WriteFile(req.JSONPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("write json: %w", err)
		}
		outputs = append(outputs, req.JSONPath)
	}
	if req.HTMLPath != "" {
		page, err := render.HTML(doc, opts)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		if err := os.WriteFile(req.HTMLPath, []byte(page), 0o644); err != nil {
			return nil, fmt.Errorf("write html: %w", err)
		}
		outputs = append(outputs, req.HTMLPath)
	}
	return outputs, nil
}

func (r *Runner) outputDir(req Request) string {
	if req.OutputDir != "" {
		return req.OutputDir
	}
	return filepath.Dir(req.VaultPath)
}

// VaultBase strips the vault file extensions from a path's base name.
func VaultBase(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, ".vault")
}
