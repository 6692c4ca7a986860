package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/itemcheck/internal/config"
)

func newRulesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rules as YAML",
		Long: `Print the denylists, vocabulary and threshold an audit would use after
applying the environment and the rules file. The output is a valid rules file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}
			return config.EncodeRules(cmd.OutOrStdout(), cfg)
		},
	}
}
