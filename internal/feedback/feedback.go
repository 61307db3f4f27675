// Package feedback sends a finished simulation run to the AI grader and
// turns the response into a scored report plus targeted follow-up
// questions for weak areas.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
	"github.com/abhisek/certquiz/internal/quiz"
	"github.com/abhisek/certquiz/internal/simulation"
)

// ScoredQuestion is one graded attempt. Scores only ever come from the
// grader; nothing in this package computes one locally.
type ScoredQuestion struct {
	Type       string `json:"type"`
	SkillArea  string `json:"skill_area"`
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
	Score      Score  `json:"score"`
	Notes      string `json:"notes"`
}

// CategoryScore is an aggregate grade for one skill area.
type CategoryScore struct {
	Category string `json:"category"`
	Score    Score  `json:"score"`
}

// Report is the grader's full response for one run.
type Report struct {
	RunID                    string           `json:"run_id"`
	ExamCode                 string           `json:"exam_code"`
	ScoredQuestions          []ScoredQuestion `json:"scored_questions"`
	PerformanceByCategory    []CategoryScore  `json:"performance_by_category"`
	NewQuestionsForWeakAreas []quiz.Question  `json:"new_questions_for_weak_areas"`
}

// Service grades runs and persists targeted questions.
type Service struct {
	provider llm.Provider
	dir      files.Dir
}

// NewService builds a feedback service.
func NewService(provider llm.Provider, dir files.Dir) *Service {
	return &Service{provider: provider, dir: dir}
}

const gradingSystemPrompt = `You are a strict but constructive certification exam grader. Score each answer 0-100: yes/no questions are 100 for a correct answer and 0 otherwise; qualitative answers are scored against their criteria. Aggregate per skill area, and write new diagnostic questions only for skill areas scoring under 70.`

func gradingSchema() *llm.Schema {
	question := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":             map[string]any{"type": "string", "enum": []any{quiz.TypeYesNo, quiz.TypeQualitative}},
			"skill_area":       map[string]any{"type": "string"},
			"question":         map[string]any{"type": "string"},
			"expected_answer":  map[string]any{"type": "string"},
			"scoring_criteria": map[string]any{"type": "string"},
		},
		"required":             []any{"type", "skill_area", "question"},
		"additionalProperties": false,
	}
	return &llm.Schema{
		Name:        "graded_run",
		Description: "Scored simulation run with weak-area follow-ups",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scored_questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type":        map[string]any{"type": "string"},
							"skill_area":  map[string]any{"type": "string"},
							"question":    map[string]any{"type": "string"},
							"user_answer": map[string]any{"type": "string"},
							"score":       map[string]any{"type": []any{"integer", "number", "string", "null"}},
							"notes":       map[string]any{"type": "string"},
						},
						"required":             []any{"skill_area", "question", "score"},
						"additionalProperties": false,
					},
				},
				"performance_by_category": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"category": map[string]any{"type": "string"},
							"score":    map[string]any{"type": []any{"integer", "number", "string", "null"}},
						},
						"required":             []any{"category", "score"},
						"additionalProperties": false,
					},
				},
				"new_questions_for_weak_areas": map[string]any{
					"type":  "array",
					"items": question,
				},
			},
			"required":             []any{"scored_questions", "performance_by_category", "new_questions_for_weak_areas"},
			"additionalProperties": false,
		},
	}
}

// GradeLatest grades the most recent run for examCode and writes any
// weak-area questions to the targeted questions file.
func (s *Service) GradeLatest(ctx context.Context, examCode string) (*Report, error) {
	run, err := simulation.LatestRun(s.dir, examCode)
	if err != nil {
		return nil, err
	}
	return s.Grade(ctx, run)
}

// Grade sends one run to the grader and returns the report.
func (s *Service) Grade(ctx context.Context, run simulation.Run) (*Report, error) {
	if len(run.QuestionsAttempted) == 0 {
		return nil, fmt.Errorf("run %s has no answered questions to grade", run.RunID)
	}

	attempts, err := json.MarshalIndent(run.QuestionsAttempted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode run: %w", err)
	}
	prompt := fmt.Sprintf(
		"Grade this %s simulation run. Each entry includes the user's answer and either the expected answer or the scoring criteria.\n\n%s",
		run.ExamCode, attempts,
	)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "grading"), llm.Request{
		System:    gradingSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    gradingSchema(),
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("grade run: %w", err)
	}

	var report Report
	if err := json.Unmarshal(resp.Content, &report); err != nil {
		return nil, fmt.Errorf("decode graded run: %w", err)
	}
	report.RunID = run.RunID
	report.ExamCode = run.ExamCode

	if len(report.NewQuestionsForWeakAreas) > 0 {
		path := s.dir.TargetedQuestionsFile(run.ExamCode)
		if err := files.SaveJSON(path, report.NewQuestionsForWeakAreas); err != nil {
			return nil, fmt.Errorf("save targeted questions: %w", err)
		}
	}
	return &report, nil
}

// LoadTargetedQuestions reads the weak-area questions written by a prior
// grading pass.
func LoadTargetedQuestions(dir files.Dir, examCode string) ([]quiz.Question, error) {
	var questions []quiz.Question
	path := dir.TargetedQuestionsFile(examCode)
	if err := files.LoadJSON(path, &questions); err != nil {
		if files.IsNotExist(err) {
			return nil, fmt.Errorf("no targeted questions for %s yet; run `certquiz feedback --exam %s` first", examCode, examCode)
		}
		return nil, fmt.Errorf("load targeted questions: %w", err)
	}
	return questions, nil
}
