package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/export"
	"github.com/abhisek/certquiz/internal/feedback"
)

var podcastCmd = &cobra.Command{
	Use:   "podcast",
	Short: "Synthesize a recap podcast over your weak-area concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")

		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		questions, err := feedback.LoadTargetedQuestions(env.dir, exam)
		if err != nil {
			return err
		}
		concepts := export.ExtractConcepts(questions)

		provider, err := env.newProvider(cmd.Context())
		if err != nil {
			return err
		}
		media, err := env.newMediaProvider()
		if err != nil {
			return err
		}

		path, err := export.NewPodcaster(provider, media, env.dir).Generate(cmd.Context(), exam, concepts)
		if err != nil {
			return err
		}
		fmt.Printf("Podcast saved → %s\n", path)
		return nil
	},
}

func init() {
	podcastCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	_ = podcastCmd.MarkFlagRequired("exam")
}
