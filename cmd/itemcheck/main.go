package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/itemcheck/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	rulesFile string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "itemcheck",
		Short: "Check exam question banks for authoring-style defects",
		Long: `itemcheck reads a question bank (xlsx, csv or an HTML-table .xls export),
runs the authoring-style checks on every question and writes an error summary
listing the questions that need attention.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.rulesFile, "rules", "", "YAML rules file (overrides RULES_FILE)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(newAuditCmd(g))
	root.AddCommand(newRulesCmd(g))
	return root
}

// loadConfig reads the environment, lets apply override it with flags and
// finally fills anything still unset from the rules file.
func (g *globalFlags) loadConfig(apply func(*config.Config) error) (config.Config, error) {
	cfg := config.Load()
	if g.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(g.logLevel)); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
	}
	if g.rulesFile != "" {
		cfg.RulesFile = g.rulesFile
	}
	if apply != nil {
		if err := apply(&cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.RulesFile != "" {
		rf, err := config.LoadRules(cfg.RulesFile)
		if err != nil {
			return cfg, err
		}
		cfg.ApplyRules(rf)
	}
	return cfg, cfg.Validate()
}

func newLogger(cmd *cobra.Command, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
