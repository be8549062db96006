package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfedotov/brdforge/internal/brd"
	"github.com/mfedotov/brdforge/internal/pipeline"
	"github.com/mfedotov/brdforge/internal/project"
	"github.com/mfedotov/brdforge/internal/render"
)

var (
	runName        string
	runAuthor      string
	runRole        string
	runResolutions string
	runOutJSON     string
	runOutMD       string
	runOutHTML     string
	runOutputDir   string
	runNoFooter    bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <vault>",
	Short: "Run the four-step pipeline over one vault file",
	Long: `Run executes the full pipeline for one vault (JSON or YAML):
extraction, conflict detection, resolution, and document generation.

When conflicts are detected and no --resolutions file is given, the run
stops at the human gate: detected conflicts are printed and a resolutions
template is written next to the output. Fill in the template and re-run
with --resolutions to complete the remaining steps.

Example:
  brdforge run checkout.vault.json --author "Dana Kim" --role "PM"
  brdforge run checkout.vault.json --resolutions checkout.resolutions.yaml
  brdforge run checkout.vault.json --json brd.json --md brd.md --html brd.html`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runName, "name", "", "project name (default: vault file base name)")
	runCmd.Flags().StringVar(&runAuthor, "author", "", "document author name")
	runCmd.Flags().StringVar(&runRole, "role", "", "document author role")
	runCmd.Flags().StringVar(&runResolutions, "resolutions", "", "resolutions YAML answering detected conflicts")

	runCmd.Flags().StringVar(&runOutJSON, "json", "", "output JSON path (optional)")
	runCmd.Flags().StringVar(&runOutMD, "md", "", "output Markdown path (default: <vault base>.brd.md)")
	runCmd.Flags().StringVar(&runOutHTML, "html", "", "output HTML path (optional)")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "directory for default outputs")
	runCmd.Flags().BoolVar(&runNoFooter, "no-footer", false, "disable footer in Markdown documents")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runNoFooter {
		cfg.Output.IncludeFooter = false
	}
	if runOutputDir == "" {
		runOutputDir = cfg.Pipeline.OutputDir
	}

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

	outcome, err := runner.Run(context.Background(), pipeline.Request{
		VaultPath:       args[0],
		Name:            runName,
		Author:          brd.Author{Name: runAuthor, Role: runRole},
		ResolutionsPath: runResolutions,
		OutputDir:       runOutputDir,
		JSONPath:        runOutJSON,
		MarkdownPath:    runOutMD,
		HTMLPath:        runOutHTML,
	})
	if err != nil {
		return err
	}

	if outcome.Pending {
		fmt.Fprintf(os.Stderr, "Detected %d conflicts requiring resolution:\n\n", len(outcome.State.ConflictsData))
		render.Conflicts(os.Stderr, outcome.State.ConflictsData)
		fmt.Fprintf(os.Stderr, "Resolutions template written to %s\n", outcome.SkeletonPath)
		fmt.Fprintf(os.Stderr, "Fill in each selection and re-run with --resolutions %s\n", outcome.SkeletonPath)
		return nil
	}

	if cfg.Output.Verbose {
		render.SummaryText(os.Stderr, outcome.State.SummaryData)
	}
	for _, path := range outcome.Outputs {
		fmt.Printf("wrote %s\n", path)
	}
	fmt.Printf("project %s completed\n", outcome.ProjectID)
	return nil
}
