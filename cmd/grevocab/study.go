package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/grevocab/internal/cli"
	"github.com/at-ishikawa/grevocab/internal/scheduler"
)

func newStudyCommand() *cobra.Command {
	var size int
	var newRatio float64
	var modeName string

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Start an interactive study session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mode, err := cli.ParseStudyMode(modeName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = cfg.Session.Size
			}
			if !cmd.Flags().Changed("new-ratio") {
				newRatio = cfg.Session.NewRatio
			}

			items, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			cards, err := scheduler.New(items, store, scheduler.WithRand(rng)).BuildSession(size, scheduler.WithNewRatio(newRatio))
			if err != nil {
				return fmt.Errorf("build session: %w", err)
			}
			if len(cards) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to study right now.")
				return nil
			}

			if mode == cli.ModeFlashcard {
				quiz := cli.NewStudyQuizCLI(store, cards, cmd.InOrStdin(), cmd.OutOrStdout())
				return quiz.Run(ctx, quiz)
			}
			quiz, err := cli.NewChoiceQuizCLI(mode, store, items, rng, cards, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return quiz.Run(ctx, quiz)
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Number of cards in the session (defaults to session.size)")
	cmd.Flags().StringVar(&modeName, "mode", string(cli.ModeFlashcard), "Study mode: flashcard, quiz or context")
	cmd.Flags().Float64Var(&newRatio, "new-ratio", 0, "Share of never-seen words, 0 to 1 (defaults to session.new_ratio)")
	return cmd
}
