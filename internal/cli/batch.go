package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/pipeline"
	"github.com/mfedotov/brdforge/internal/project"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
	batchAuthor      string
	batchRole        string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Run the pipeline over every vault file in a directory",
	Long: `Batch processes every *.vault.json / *.vault.yaml in a directory
concurrently. Each vault is paired with a sibling <base>.resolutions.yaml
when one exists; vaults with unresolved conflicts stop at the human gate
and write their resolutions template.

Example:
  brdforge batch ./vaults
  brdforge batch ./vaults --concurrency 8 --output-dir ./documents`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default: config)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "output directory for documents (default: the input dir)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchAuthor, "author", "", "document author name for all projects")
	batchCmd.Flags().StringVar(&batchRole, "role", "", "document author role for all projects")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.Concurrency.Workers = batchConcurrency
	}
	outputDir := batchOutputDir
	if outputDir == "" {
		outputDir = dir
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  BRDForge Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input dir:    %s\n", dir)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	log := io.Discard
	if cfg.Output.Verbose {
		log = os.Stderr
	}
	machine := project.NewMachine(s, project.WithStepDelay(cfg.Pipeline.StepDelay))
	runner := pipeline.NewRunner(machine, cfg.Output.IncludeFooter, log)
	processor := pipeline.NewBatchProcessor(runner, cfg.Concurrency)

	start := time.Now()
	results, err := processor.Process(ctx, dir, brd.Author{Name: batchAuthor, Role: batchRole}, outputDir)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No vault files found in %s\n", dir)
		return nil
	}

	completed, pending, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Error != nil:
			failed++
			fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", r.VaultPath, r.Error)
		case r.Outcome.Pending:
			pending++
			fmt.Fprintf(os.Stderr, "  … %s: awaiting resolutions (%s)\n", r.VaultPath, r.Outcome.SkeletonPath)
		default:
			completed++
			fmt.Fprintf(os.Stderr, "  ✓ %s: project %s\n", r.VaultPath, r.Outcome.ProjectID)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Completed: %d   Pending: %d   Failed: %d   (%v)\n",
		completed, pending, failed, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")

	if failed == len(results) {
		return fmt.Errorf("all %d vaults failed", failed)
	}
	return nil
}
