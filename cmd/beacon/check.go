package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beacon/internal/config"
	"beacon/internal/diagfmt"
	"beacon/internal/driver"
)

var (
	checkJobs    int
	checkFormat  string
	checkNoHints bool
)

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "worker parallelism (0 = all cores)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "", "output format (pretty|json), overrides beacon.toml")
	checkCmd.Flags().BoolVar(&checkNoHints, "no-hints", false, "suppress hint-severity findings")
}

var checkCmd = &cobra.Command{
	Use:   "check <snapshot>",
	Short: "Run the analysis passes over a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := driver.Options{
			Jobs:           checkJobs,
			Passes:         cfg.Passes,
			MaxDiagnostics: cfg.Output.MaxDiagnostics,
			Hints:          cfg.Output.Hints && !checkNoHints,
		}
		if n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && n > 0 {
			opts.MaxDiagnostics = n
		}

		res, err := driver.CheckSnapshot(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}

		format := cfg.Output.Format
		if checkFormat != "" {
			format = checkFormat
		}
		switch format {
		case "json":
			if err := diagfmt.JSON(os.Stdout, res.Bag, res.Files, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			}); err != nil {
				return err
			}
		case "pretty", "":
			diagfmt.Pretty(os.Stdout, res.Bag, res.Files, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stdout),
				ShowNotes: true,
			})
		default:
			return fmt.Errorf("unknown format %q", format)
		}

		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet && format != "json" {
			fmt.Printf("%d file(s), %d finding(s)\n", res.Files.Len(), res.Bag.Len())
		}
		if res.Bag.HasErrors() {
			return fmt.Errorf("snapshot has errors")
		}
		return nil
	},
}

func loadConfig() (config.Config, error) {
	manifest, ok, err := config.Load(".")
	if err != nil {
		return config.Config{}, err
	}
	if !ok {
		return config.Default(), nil
	}
	return manifest.Config, nil
}
