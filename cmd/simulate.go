package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/quiz"
	screen "github.com/abhisek/certquiz/internal/screens/quiz"
	"github.com/abhisek/certquiz/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Take the generated question set interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")
		demo, _ := cmd.Flags().GetBool("demo")

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		set, err := quiz.LoadSet(env.dir, exam)
		if err != nil {
			return err
		}

		engine := simulation.NewEngine()
		if err := engine.Load(set, demo); err != nil {
			return err
		}
		return screen.Run(engine, env.dir)
	},
}

func init() {
	simulateCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	simulateCmd.Flags().Bool("demo", false, "Yes/no questions only")
	_ = simulateCmd.MarkFlagRequired("exam")
}
