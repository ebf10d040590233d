// Package main implements the qavalidator CLI: it loads a bundle, a
// ruleset, and a question catalog from files and prints the validation
// findings.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qav "github.com/clinrule/qavalidator"
	"github.com/clinrule/qavalidator/bundle"
	"github.com/clinrule/qavalidator/condition"
	"github.com/clinrule/qavalidator/engine"
	"github.com/clinrule/qavalidator/loader"
	"github.com/clinrule/qavalidator/question"
	"github.com/clinrule/qavalidator/rule"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:     "qavalidator",
		Short:   "Question/answer rule validation for clinical data bundles",
		Version: version,
	}

	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type validateFlags struct {
	bundlePath    string
	rulesPath     string
	questionsPath string
	projectID     string
	output        string
	parallel      bool
	verbose       bool
}

func newValidateCmd() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a bundle against a ruleset and question catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.bundlePath, "bundle", "b", "", "bundle JSON file (required)")
	cmd.Flags().StringVarP(&flags.rulesPath, "rules", "r", "", "ruleset JSON file (required)")
	cmd.Flags().StringVarP(&flags.questionsPath, "questions", "q", "", "question catalog YAML file (required)")
	cmd.Flags().StringVarP(&flags.projectID, "project", "p", "default", "project id for catalog lookups")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "run rules in parallel")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	for _, name := range []string{"bundle", "rules", "questions"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	return cmd
}

func runValidate(cmd *cobra.Command, flags *validateFlags) error {
	log, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bundleData, err := os.ReadFile(flags.bundlePath)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}
	b, err := bundle.Parse(bundleData)
	if err != nil {
		return err
	}

	rulesData, err := os.ReadFile(flags.rulesPath)
	if err != nil {
		return fmt.Errorf("read ruleset: %w", err)
	}
	rs, err := rule.ParseSet(rulesData)
	if err != nil {
		return err
	}

	catalog := question.NewInMemoryCatalog()
	if err := loader.LoadCatalogFile(flags.questionsPath, flags.projectID, catalog); err != nil {
		return err
	}

	v := engine.New(qav.WithParallelRules(flags.parallel))
	v.SetCatalog(catalog)
	v.SetConditionEvaluator(condition.NewFHIRPathEvaluator())
	v.SetLogger(log)

	result, err := v.Validate(cmd.Context(), b, rs, flags.projectID)
	if err != nil {
		return err
	}

	switch flags.output {
	case "json":
		return printJSON(cmd, result)
	case "text":
		printText(cmd, result)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", flags.output)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func printJSON(cmd *cobra.Command, result *qav.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printText(cmd *cobra.Command, result *qav.Result) {
	out := cmd.OutOrStdout()
	for _, f := range result.Findings {
		fmt.Fprintf(out, "%-11s %-28s rule=%s path=%s\n", f.Severity, f.Code, f.RuleID, f.Path)
	}
	for _, note := range result.AdvisoryNotes {
		fmt.Fprintf(out, "advisory    %s\n", note)
	}
	fmt.Fprintf(out, "%d findings (%d errors, %d warnings), %d questions, %d answers validated\n",
		len(result.Findings), result.ErrorCount(), result.WarningCount(),
		result.QuestionsValidated, result.AnswersValidated)
}
