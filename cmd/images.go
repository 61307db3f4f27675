package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/export"
	"github.com/abhisek/certquiz/internal/feedback"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Generate study images for your weak-area concepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")
		style, _ := cmd.Flags().GetString("style")

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

		results, err := export.NewImager(provider, media, env.dir).Generate(cmd.Context(), concepts, style)
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("✗ %s: %v\n", r.Concept, r.Err)
				continue
			}
			fmt.Printf("✓ %s → %s\n", r.Concept, r.Path)
		}
		return nil
	},
}

func init() {
	imagesCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	imagesCmd.Flags().String("style", "fun", "Image style: fun, professional, or photorealistic")
	_ = imagesCmd.MarkFlagRequired("exam")
}
