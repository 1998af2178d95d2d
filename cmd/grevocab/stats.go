package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/grevocab/internal/cli"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			cli.PrintStatistics(cmd.OutOrStdout(), store.Statistics())
			return nil
		},
	}
}

func newDifficultCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "difficult",
		Short: "List the most difficult words",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			items, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			cli.PrintDifficultWords(cmd.OutOrStdout(), store.MostDifficult(limit), items)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of words to show")
	return cmd
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the deck by word or definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			items, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			cli.PrintSearchResults(cmd.OutOrStdout(), items.Search(args[0]))
			return nil
		},
	}
}
