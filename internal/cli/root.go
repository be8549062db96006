// Package cli wires the cobra command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfedotov/brdforge/internal/model"
	"github.com/mfedotov/brdforge/internal/store"
)

var (
	cfgFile     string
	verbose     bool
	storeDriver string
	storePath   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "brdforge",
	Short: "BRDForge - Business Requirements Documents from conversational records",
	Long: `BRDForge turns multi-source conversational records (chat threads, email,
meeting transcripts, proposal documents) into a formal Business Requirements
Document through a four-step pipeline:

  1. Extraction  - atomic facts from every relevant source
  2. Conflicts   - contradiction detection across five categories
  3. Summary     - decisions, risks, requirements, stakeholders
  4. Document    - the fixed-shape BRD, rendered to Markdown/HTML/JSON

Conflict resolution is human-guided: when contradictions are found, the run
stops and writes a resolutions file template for review.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("brdforge v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.brdforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "project store driver (memory, disk, sqlite)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "store data directory (disk) or database file (sqlite)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("store.driver", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("store-path"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.brdforge")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match BRDFORGE_*
	viper.SetEnvPrefix("BRDFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, env vars and bound flags.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if storeDriver != "" {
		cfg.Store.Driver = storeDriver
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// openStore opens the configured store driver.
func openStore(cfg *model.Config) (store.Store, error) {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
