package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Grade your latest simulation run and target weak areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		provider, err := env.newProvider(cmd.Context())
		if err != nil {
			return err
		}

		report, err := feedback.NewService(provider, env.dir).GradeLatest(cmd.Context(), exam)
		if err != nil {
			return err
		}
		fmt.Print(feedback.Render(report))
		return nil
	},
}

func init() {
	feedbackCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	_ = feedbackCmd.MarkFlagRequired("exam")
}
