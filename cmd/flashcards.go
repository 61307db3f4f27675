package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/export"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Export an exam's outline as a flashcard CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")

		env, tree, err := loadContent(cmd)
		if err != nil {
			return err
		}
		cards, err := export.BuildFlashcards(tree, exam)
		if err != nil {
			return err
		}
		path, err := export.WriteFlashcards(env.dir, exam, cards)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %d flashcards → %s\n", len(cards), path)
		return nil
	},
}

func init() {
	flashcardsCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	_ = flashcardsCmd.MarkFlagRequired("exam")
}
