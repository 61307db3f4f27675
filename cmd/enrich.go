package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/generate"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Generate questions for every detail of an exam outline",
	Long:  "Enrich runs one AI call per learning detail across a worker pool, checkpointing each result so an interrupted run can be recovered, and merges everything back into the content file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		exam, _ := cmd.Flags().GetString("exam")
		perDetail, _ := cmd.Flags().GetInt("questions-per-detail")

		env, tree, err := loadContent(cmd)
		if err != nil {
			return err
		}
		provider, err := env.newProvider(cmd.Context())
		if err != nil {
			return err
		}

		recovered, err := generate.RecoverPending(env.dir, tree)
		if err != nil {
			return err
		}
		if recovered > 0 {
			fmt.Printf("Recovered %d checkpointed results from an interrupted run\n", recovered)
		}

		orch := generate.New(provider, env.dir, env.cfg.Workers)
		stats, err := orch.GenerateForExam(cmd.Context(), tree, exam, perDetail)
		if err != nil {
			return err
		}

		if err := content.Save(env.cfg.ContentPath, tree); err != nil {
			return err
		}

		fmt.Printf("Enriched %s: %d details, %d succeeded, %d failed, %d questions generated\n",
			exam, stats.Tasks, stats.Succeeded, stats.Failed, stats.QuestionsGenerated)
		return nil
	},
}

func init() {
	enrichCmd.Flags().String("exam", "", "Exam code, e.g. AZ-900")
	enrichCmd.Flags().Int("questions-per-detail", 2, "Questions to generate per detail")
	_ = enrichCmd.MarkFlagRequired("exam")
}
