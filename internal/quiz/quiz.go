// Package quiz defines question sets and the strategies that produce them:
// a live AI generation pass over the whole exam outline, or a stratified
// draw from the pre-generated question pool in the content tree.
package quiz

import (
	"fmt"

	"github.com/abhisek/certquiz/internal/files"
)

// Question types. Yes/no questions carry an expected answer; qualitative
// questions carry scoring criteria for the grader instead.
const (
	TypeYesNo       = "yes_no"
	TypeQualitative = "qualitative"
)

// Question is one quiz item.
type Question struct {
	QuestionID      string `json:"question_id,omitempty"`
	Type            string `json:"type"`
	SkillArea       string `json:"skill_area"`
	Question        string `json:"question"`
	ExpectedAnswer  string `json:"expected_answer,omitempty"`
	ScoringCriteria string `json:"scoring_criteria,omitempty"`
	Purpose         string `json:"purpose,omitempty"`
}

// Set is a generated quiz for one exam.
type Set struct {
	ExamCode  string     `json:"exam_code"`
	Source    string     `json:"source"`
	Questions []Question `json:"questions"`
}

// YesNo returns only the yes/no questions, in order.
func (s *Set) YesNo() []Question {
	var out []Question
	for _, q := range s.Questions {
		if q.Type == TypeYesNo {
			out = append(out, q)
		}
	}
	return out
}

// SaveSet overwrites the per-exam questions file.
func SaveSet(dir files.Dir, set *Set) error {
	if err := files.SaveJSON(dir.QuestionsFile(set.ExamCode), set); err != nil {
		return fmt.Errorf("save question set: %w", err)
	}
	return nil
}

// LoadSet reads the per-exam questions file.
func LoadSet(dir files.Dir, examCode string) (*Set, error) {
	var set Set
	path := dir.QuestionsFile(examCode)
	if err := files.LoadJSON(path, &set); err != nil {
		if files.IsNotExist(err) {
			return nil, fmt.Errorf("no question set for %s yet; run `certquiz generate --exam %s` first", examCode, examCode)
		}
		return nil, fmt.Errorf("load question set: %w", err)
	}
	return &set, nil
}
