package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/config"
	"keywordmatrix/internal/export"
	"keywordmatrix/internal/matrix"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/runner"
)

// options holds the flag values of one invocation.
type options struct {
	out     string
	csv     string
	rules   string
	explain string
}

// newRootCommand builds the kwmatrix command.
func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "kwmatrix [flags] files...",
		Short: "Classify keyword tool exports into the 2x2 strategy matrix",
		Long: `kwmatrix reads Naver keyword tool exports (.xlsx or .csv), classifies
every keyword, prints the per-bucket summary and optionally writes the
classified records as a workbook or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(opts.rules)
			if err != nil {
				return err
			}
			if opts.explain != "" {
				printExplanation(cmd.OutOrStdout(), classifier.Explain(reg, opts.explain))
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return classifyFiles(cmd, reg, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "output workbook (.xlsx)")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "output CSV file")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "rule registry YAML (default: built-in rules)")
	cmd.Flags().StringVar(&opts.explain, "explain", "", "print the classification trace of one keyword and exit")

	return cmd
}

func loadRegistry(path string) (*classifier.Registry, error) {
	rulesCfg, err := config.LoadRulesFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	reg, err := classifier.NewRegistry(rulesCfg)
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return reg, nil
}

func classifyFiles(cmd *cobra.Command, reg *classifier.Registry, opts options, paths []string) error {
	files := make([]runner.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		files = append(files, runner.File{Name: filepath.Base(path), Body: f})
	}

	run, err := runner.New(reg, nil).FromFiles(cmd.Context(), models.SourceCLI, files)
	if err != nil {
		return fmt.Errorf("failed to classify: %w", err)
	}

	for _, is := range run.Issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s row %d: %s\n", is.Source, is.Row, is.Error)
	}
	printSummary(cmd.OutOrStdout(), run)

	if opts.out != "" {
		if err := writeFile(opts.out, func(w io.Writer) error {
			return export.WriteXLSX(w, run.Records, run.Stats)
		}); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}
	if opts.csv != "" {
		if err := writeFile(opts.csv, func(w io.Writer) error {
			return export.WriteCSV(w, run.Records)
		}); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, run *models.Run) {
	fmt.Fprintf(w, "%d keywords classified\n", len(run.Records))
	for _, st := range run.Summary().Stats {
		fmt.Fprintf(w, "  %-28s %6d  avg volume %s  avg clicks %s\n",
			strings.ReplaceAll(st.Bucket.DisplayLabel(), "\n", " "),
			st.Count,
			matrix.FormatFloat(st.AvgSearchVolume, 2),
			matrix.FormatFloat(st.AvgClicks, 2),
		)
	}
}

func printExplanation(w io.Writer, exp classifier.Explanation) {
	fmt.Fprintf(w, "%q -> %q\n", exp.RawKeyword, exp.Keyword)
	for _, p := range exp.Passes {
		status := "skipped"
		if p.Eligible {
			status = "matched: " + strings.Join(p.Matches, ", ")
			if len(p.Matches) == 0 {
				status = "no match"
			}
		}
		fmt.Fprintf(w, "  %-12s %s => %s / %s\n", p.Pass, status, p.Class.Label(), p.Detail)
	}
	fmt.Fprintf(w, "bucket: %s\n", exp.Result.Bucket.Label())
}
