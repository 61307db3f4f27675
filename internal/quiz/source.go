package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/llm"
	"github.com/abhisek/certquiz/internal/sampling"
)

// Source produces a question set for an exam. The concrete strategy is
// chosen at construction time; nothing downstream branches on a mode flag.
type Source interface {
	Generate(ctx context.Context, examCode string, yesNo, qualitative int) (*Set, error)
}

// LiveSource asks the AI collaborator for fresh questions over the whole
// exam outline in a single structured call.
type LiveSource struct {
	provider llm.Provider
	tree     *content.Tree
}

// NewLiveSource builds a live question source.
func NewLiveSource(provider llm.Provider, tree *content.Tree) *LiveSource {
	return &LiveSource{provider: provider, tree: tree}
}

const liveSystemPrompt = `You are an expert certification exam tutor. Generate exam-style diagnostic questions grounded strictly in the provided exam outline. Yes/no questions must have an unambiguous Yes or No answer. Qualitative questions must include concrete scoring criteria a grader can apply.`

func questionSetSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "question_set",
		Description: "Diagnostic questions for a certification exam",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type":             map[string]any{"type": "string", "enum": []any{TypeYesNo, TypeQualitative}},
							"skill_area":       map[string]any{"type": "string"},
							"question":         map[string]any{"type": "string"},
							"expected_answer":  map[string]any{"type": "string"},
							"scoring_criteria": map[string]any{"type": "string"},
						},
						"required":             []any{"type", "skill_area", "question"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// Generate runs one structured LLM call and returns the resulting set.
func (s *LiveSource) Generate(ctx context.Context, examCode string, yesNo, qualitative int) (*Set, error) {
	exam := s.tree.Exam(examCode)
	if exam == nil {
		return nil, fmt.Errorf("exam %s not found in content tree", examCode)
	}

	prompt := fmt.Sprintf(
		"Generate exactly %d yes/no questions and %d qualitative questions for the %s exam. Spread questions across all skill areas.\n\nExam outline:\n%s",
		yesNo, qualitative, examCode, s.tree.PromptContext(examCode),
	)

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "question-gen"), llm.Request{
		System:    liveSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    questionSetSchema(),
		MaxTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var payload struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("decode question set: %w", err)
	}
	return &Set{ExamCode: examCode, Source: "live", Questions: payload.Questions}, nil
}

// PoolSource draws from the primary questions already generated into the
// content tree, stratified by skill area. Pool questions are always yes/no,
// so the qualitative count is folded into the total draw.
type PoolSource struct {
	tree *content.Tree
	rng  *rand.Rand
}

// NewPoolSource builds a pool question source. rng may be nil for the
// process-wide source.
func NewPoolSource(tree *content.Tree, rng *rand.Rand) *PoolSource {
	return &PoolSource{tree: tree, rng: rng}
}

// Generate samples yesNo+qualitative questions across the exam's skill areas.
func (s *PoolSource) Generate(_ context.Context, examCode string, yesNo, qualitative int) (*Set, error) {
	exam := s.tree.Exam(examCode)
	if exam == nil {
		return nil, fmt.Errorf("exam %s not found in content tree", examCode)
	}

	var strata []sampling.Stratum[Question]
	for _, skill := range exam.SkillsMeasured {
		stratum := sampling.Stratum[Question]{Name: skill.SkillArea}
		for _, topic := range skill.Subtopics {
			for _, d := range topic.Details {
				if !d.HasQuestion() {
					continue
				}
				q := Question{
					QuestionID: *d.QuestionID,
					Type:       TypeYesNo,
					SkillArea:  skill.SkillArea,
					Question:   *d.QuestionText,
					Purpose:    d.Description,
				}
				if d.ExpectedAnswer != nil {
					q.ExpectedAnswer = *d.ExpectedAnswer
				}
				stratum.Items = append(stratum.Items, q)
			}
		}
		if len(stratum.Items) > 0 {
			strata = append(strata, stratum)
		}
	}
	if len(strata) == 0 {
		return nil, fmt.Errorf("exam %s has no generated questions; run `certquiz enrich --exam %s` first", examCode, examCode)
	}

	drawn := sampling.Stratified(strata, yesNo+qualitative, s.rng)
	return &Set{ExamCode: examCode, Source: "pool", Questions: drawn}, nil
}
