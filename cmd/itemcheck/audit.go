package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/itemcheck/internal/audit"
	"github.com/dgallion1/itemcheck/internal/bank"
	"github.com/dgallion1/itemcheck/internal/config"
	"github.com/dgallion1/itemcheck/internal/report"
	"github.com/dgallion1/itemcheck/internal/rules"
)

type auditFlags struct {
	stemWords   string
	optionWords string
	threshold   int
	vocab       string
	dictionary  string
	annotator   string
	format      string
	output      string
	workers     int
}

func newAuditCmd(g *globalFlags) *cobra.Command {
	f := &auditFlags{}
	cmd := &cobra.Command{
		Use:   "audit <bank>",
		Short: "Audit a question bank and write an error summary",
		Long: `Audit every question in a bank and write the flagged ones to an error summary.

The summary is written next to the bank as <bank>_error_summary.<format>
unless --output is given. Nothing is written when no question is flagged.

Examples:
  itemcheck audit bank.xlsx
  itemcheck audit --format=csv --threshold=40 bank.xls
  itemcheck audit --stem-words="you, correct" --vocab=glossary.md bank.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, g, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.stemWords, "stem-words", "", "Comma-separated stem denylist (empty disables the check)")
	fl.StringVar(&f.optionWords, "option-words", "", "Comma-separated option denylist (empty disables the check)")
	fl.IntVar(&f.threshold, "threshold", 0, "Flag a question when its error text is longer than this")
	fl.StringVar(&f.vocab, "vocab", "", "Supplementary vocabulary file (txt, md, html, pdf, docx)")
	fl.StringVar(&f.dictionary, "dictionary", "", "Extra dictionary words, one per line")
	fl.StringVar(&f.annotator, "annotator", "", "Annotator: rules or prose")
	fl.StringVar(&f.format, "format", "", "Summary format: xlsx, csv, json, md, html, docx")
	fl.StringVarP(&f.output, "output", "o", "", "Summary path (default <bank>_error_summary.<format>)")
	fl.IntVar(&f.workers, "workers", 0, "Questions audited in parallel")
	return cmd
}

// apply copies every flag the user set onto cfg.
func (f *auditFlags) apply(cmd *cobra.Command) func(*config.Config) error {
	return func(cfg *config.Config) error {
		fl := cmd.Flags()
		if fl.Changed("stem-words") {
			cfg.StemWords = nonNil(rules.ParseList(f.stemWords))
		}
		if fl.Changed("option-words") {
			cfg.OptionWords = nonNil(rules.ParseList(f.optionWords))
		}
		if fl.Changed("threshold") {
			if f.threshold < 0 {
				return fmt.Errorf("--threshold must not be negative")
			}
			cfg.SetThreshold(f.threshold)
		}
		if fl.Changed("vocab") {
			cfg.VocabPath = f.vocab
		}
		if fl.Changed("dictionary") {
			cfg.DictionaryPath = f.dictionary
		}
		if fl.Changed("annotator") {
			cfg.Annotator = f.annotator
		}
		if fl.Changed("format") {
			cfg.ReportFormat = f.format
		}
		if fl.Changed("workers") && f.workers > 0 {
			cfg.AuditWorkers = f.workers
		}
		return nil
	}
}

func runAudit(cmd *cobra.Command, g *globalFlags, f *auditFlags, path string) error {
	cfg, err := g.loadConfig(f.apply(cmd))
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.LogLevel)

	format, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return err
	}
	opts, err := cfg.AuditOptions()
	if err != nil {
		return err
	}

	qs, err := bank.Load(path)
	if err != nil {
		return err
	}
	res, err := audit.New(opts, log.With("bank", path)).Run(cmd.Context(), qs)
	if err != nil {
		return err
	}
	for _, fail := range res.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", fail.Error())
	}

	out := cmd.OutOrStdout()
	if len(res.Flagged) == 0 {
		fmt.Fprintln(out, report.NoErrorsMessage)
		return nil
	}

	dest := f.output
	if dest == "" {
		dest = report.OutputPath(path, format)
	}
	if err := report.Save(dest, format, report.Rows(res.Flagged)); err != nil {
		return err
	}
	fmt.Fprintln(out, report.CreatedMessage(dest))
	return nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
