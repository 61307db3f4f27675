package content

import (
	"fmt"
	"strings"
)

// QA is one question/answer pair pulled from the tree, used for prompt
// context, flashcard export, and podcast scripting.
type QA struct {
	Question  string
	Answer    string
	SkillArea string
	Exam      string
}

// PromptContext renders the selected exams as a plain-text outline suitable
// for pasting into a generation prompt. Empty examCodes selects every exam.
func (t *Tree) PromptContext(examCodes ...string) string {
	if len(examCodes) == 0 {
		examCodes = t.ExamCodes()
	}
	var b strings.Builder
	for _, code := range examCodes {
		exam := t.Exam(code)
		if exam == nil {
			continue
		}
		fmt.Fprintf(&b, "Exam: %s - %s\n", code, exam.Name)
		for _, skill := range exam.SkillsMeasured {
			if skill.Percentage != "" {
				fmt.Fprintf(&b, "Skill Area: %s (%s)\n", skill.SkillArea, skill.Percentage)
			} else {
				fmt.Fprintf(&b, "Skill Area: %s\n", skill.SkillArea)
			}
			for _, topic := range skill.Subtopics {
				fmt.Fprintf(&b, "  Topic: %s\n", topic.Topic)
				for _, d := range topic.Details {
					fmt.Fprintf(&b, "    - %s\n", d.Description)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// QuestionPairs collects every primary question with an answer from the
// selected exams, in document order. Empty examCodes selects every exam.
func (t *Tree) QuestionPairs(examCodes ...string) []QA {
	if len(examCodes) == 0 {
		examCodes = t.ExamCodes()
	}
	var out []QA
	for _, code := range examCodes {
		exam := t.Exam(code)
		if exam == nil {
			continue
		}
		for _, skill := range exam.SkillsMeasured {
			for _, topic := range skill.Subtopics {
				for _, d := range topic.Details {
					if !d.HasQuestion() || d.ExpectedAnswer == nil {
						continue
					}
					out = append(out, QA{
						Question:  *d.QuestionText,
						Answer:    *d.ExpectedAnswer,
						SkillArea: skill.SkillArea,
						Exam:      code,
					})
				}
			}
		}
	}
	return out
}
