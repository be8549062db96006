package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mfedotov/brdforge/internal/project"
	"github.com/mfedotov/brdforge/internal/render"
)

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Inspect and manage stored projects",
	Long: `Projects lists, shows and removes projects from the configured store.
Only persistent store drivers (disk, sqlite) retain projects across runs.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		machine, cleanup, err := openMachine()
		if err != nil {
			return err
		}
		defer cleanup()

		metas, err := machine.List()
		if err != nil {
			return err
		}
		if len(metas) == 0 {
			fmt.Println("no projects stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTEP\tLAST MODIFIED")
		for _, md := range metas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d (%s)\t%s\n",
				md.ID, md.Name, md.Status, md.CurrentStep, md.CurrentStep,
				md.LastModified.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one project's state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		machine, cleanup, err := openMachine()
		if err != nil {
			return err
		}
		defer cleanup()

		state, err := machine.Get(args[0])
		if err != nil {
			return err
		}

		md := state.Metadata
		fmt.Printf("Project:  %s (%s)\n", md.Name, md.ID)
		fmt.Printf("Author:   %s", md.Author)
		if md.Role != "" {
			fmt.Printf(" (%s)", md.Role)
		}
		fmt.Println()
		fmt.Printf("Status:   %s, step %d (%s)\n", md.Status, md.CurrentStep, md.CurrentStep)
		fmt.Printf("Created:  %s\n", md.CreatedAt.Format("2006-01-02 15:04"))
		if md.CompletedAt != nil {
			fmt.Printf("Finished: %s\n", md.CompletedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("Facts: %d  Conflicts: %d\n", len(state.ExtractionData), len(state.ConflictsData))

		if len(state.ConflictsData) > 0 {
			fmt.Println()
			render.Conflicts(os.Stdout, state.ConflictsData)
		}
		if state.SummaryData != nil {
			fmt.Println()
			render.SummaryText(os.Stdout, state.SummaryData)
		}
		return nil
	},
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a stored project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		machine, cleanup, err := openMachine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := machine.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed project %s\n", args[0])
		return nil
	},
}

// openMachine opens the configured store and wraps it in a machine.
func openMachine() (*project.Machine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return project.NewMachine(s), func() { _ = s.Close() }, nil
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsRmCmd)
}
