package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/config"
	"github.com/abhisek/certquiz/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a diagnostic question set for an exam",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")
		yesNo, _ := cmd.Flags().GetInt("yes-no")
		qualitative, _ := cmd.Flags().GetInt("qualitative")
		sourceFlag, _ := cmd.Flags().GetString("source")

		env, tree, err := loadContent(cmd)
		if err != nil {
			return err
		}
		if sourceFlag != "" {
			env.cfg.Source = config.SourceMode(sourceFlag)
		}
		if err := env.cfg.ValidateSource(); err != nil {
			return err
		}

		var source quiz.Source
		switch env.cfg.Source {
		case config.SourcePool:
			source = quiz.NewPoolSource(tree, nil)
		default:
			provider, err := env.newProvider(cmd.Context())
			if err != nil {
				return err
			}
			source = quiz.NewLiveSource(provider, tree)
		}

		set, err := source.Generate(cmd.Context(), exam, yesNo, qualitative)
		if err != nil {
			return err
		}
		if err := quiz.SaveSet(env.dir, set); err != nil {
			return err
		}

		fmt.Printf("Generated %d questions for %s (%s source) → %s\n",
			len(set.Questions), exam, set.Source, env.dir.QuestionsFile(exam))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	generateCmd.Flags().Int("yes-no", 10, "Number of yes/no questions")
	generateCmd.Flags().Int("qualitative", 5, "Number of qualitative questions")
	generateCmd.Flags().String("source", "", "Question source: live or pool (overrides CERTQUIZ_QUESTION_SOURCE)")
	_ = generateCmd.MarkFlagRequired("exam")
}
