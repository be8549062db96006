package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/worker"
)

// BatchResult is the outcome of one vault in a batch run.
type BatchResult struct {
	VaultPath string
	Outcome   *Outcome
	Error     error
}

// Err implements worker.Result.
func (r *BatchResult) Err() error {
	return r.Error
}

// runJob pairs one vault with the shared runner and limiter.
type runJob struct {
	runner  *Runner
	limiter *worker.Limiter
	request Request
}

// Execute implements worker.Job.
func (j *runJob) Execute(ctx context.Context) worker.Result {
	result := &BatchResult{VaultPath: j.request.VaultPath}
	if err := j.limiter.Wait(ctx); err != nil {
		result.Error = err
		return result
	}
	result.Outcome, result.Error = j.runner.Run(ctx, j.request)
	return result
}

// BatchProcessor runs the pipeline over every vault file in a directory,
// bounded by a worker pool and a shared rate limiter.
type BatchProcessor struct {
	runner  *Runner
	workers int
	limiter *worker.Limiter
}

// NewBatchProcessor creates a batch processor with the given concurrency
// settings.
func NewBatchProcessor(runner *Runner, cfg model.ConcurrencyConfig) *BatchProcessor {
	return &BatchProcessor{
		runner:  runner,
		workers: cfg.Workers,
		limiter: worker.NewLimiter(cfg.ProjectsPerSecond, cfg.Burst),
	}
}

// Process runs every vault in dir concurrently. Each vault is paired with a
// sibling <base>.resolutions.yaml when one exists. One result is returned
// per input regardless of individual failures; results are sorted by vault
// path.
func (b *BatchProcessor) Process(ctx context.Context, dir string, author brd.Author, outputDir string) ([]*BatchResult, error) {
	vaults, err := FindVaults(dir)
	if err != nil {
		return nil, err
	}
	if len(vaults) == 0 {
		return nil, nil
	}

	pool := worker.NewPool(b.workers)
	pool.Start()
	go func() {
		for _, path := range vaults {
			req := Request{
				VaultPath: path,
				Author:    author,
				OutputDir: outputDir,
			}
			if res := resolutionsFor(path); res != "" {
				req.ResolutionsPath = res
			}
			pool.Submit(&runJob{runner: b.runner, limiter: b.limiter, request: req})
		}
		pool.Close()
	}()

	raw := pool.Wait()
	results := make([]*BatchResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*BatchResult)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].VaultPath < results[j].VaultPath })
	return results, nil
}

// FindVaults lists the vault files in a directory, sorted.
func FindVaults(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}

	var vaults []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".vault.json") ||
			strings.HasSuffix(name, ".vault.yaml") ||
			strings.HasSuffix(name, ".vault.yml") {
			vaults = append(vaults, filepath.Join(dir, name))
		}
	}
	sort.Strings(vaults)
	return vaults, nil
}

// resolutionsFor returns the sibling resolutions file for a vault, or "".
func resolutionsFor(vaultPath string) string {
	path := filepath.Join(filepath.Dir(vaultPath), VaultBase(vaultPath)+".resolutions.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
