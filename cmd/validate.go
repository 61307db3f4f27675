package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/qid"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check question identifiers in the content file",
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")

		env, tree, err := loadContent(cmd)
		if err != nil {
			return err
		}

		report := content.ValidateQuestionIDs(tree)
		fmt.Printf("%d questions: %d missing an id, %d duplicate ids\n",
			report.Total, report.Missing, len(report.Duplicates))
		for id, descs := range report.Duplicates {
			fmt.Printf("  %s used by %d details\n", id, len(descs))
		}
		if !report.HasProblems() {
			return nil
		}
		if !fix {
			fmt.Println("Run again with --fix to assign fresh identifiers.")
			return nil
		}

		fixed := content.FixQuestionIDs(tree, qid.New)
		if err := content.Save(env.cfg.ContentPath, tree); err != nil {
			return err
		}
		fmt.Printf("Rewrote %d identifiers in %s\n", fixed, env.cfg.ContentPath)
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("fix", false, "Assign fresh ids to missing/duplicate questions")
}
