package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/certquiz/internal/ui/theme"
)

const barWidth = 30

// Render formats the report for the terminal: a per-question score table,
// a skill-area bar chart, and a note on any targeted follow-ups.
func Render(r *Report) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("Results — %s", r.ExamCode)))
	b.WriteString("\n\n")

	for i, q := range r.ScoredQuestions {
		score := theme.ScoreStyle(int(q.Score)).Render(fmt.Sprintf("%3d", int(q.Score)))
		b.WriteString(fmt.Sprintf("%2d. [%s] %s\n", i+1, score, q.Question))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("    %s — answered: %s", q.SkillArea, q.UserAnswer)))
		b.WriteString("\n")
		if q.Notes != "" {
			b.WriteString(theme.Hint.Render("    " + q.Notes))
			b.WriteString("\n")
		}
	}

	if len(r.PerformanceByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render("Performance by skill area"))
		b.WriteString("\n\n")
		width := 0
		for _, c := range r.PerformanceByCategory {
			if len(c.Category) > width {
				width = len(c.Category)
			}
		}
		for _, c := range r.PerformanceByCategory {
			b.WriteString(fmt.Sprintf("%-*s %s %3d%%\n", width, c.Category, theme.Bar(int(c.Score), barWidth), int(c.Score)))
		}
	}

	if n := len(r.NewQuestionsForWeakAreas); n > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf(
			"%d targeted questions for weak areas saved; study them with `certquiz flashcards` or re-run `certquiz simulate`.", n)))
		b.WriteString("\n")
	}
	return b.String()
}
