package quiz

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/llm"
)

func strp(s string) *string { return &s }

func pooledTree() *content.Tree {
	tree := content.NewTree()
	exam := tree.EnsureExam("AZ-900")
	exam.Name = "Azure Fundamentals"
	for _, skill := range []struct {
		name string
		n    int
	}{
		{"Describe cloud concepts", 3},
		{"Describe Azure architecture", 5},
	} {
		topic := exam.EnsureSkillArea(skill.name).EnsureSubtopic("Topic")
		for i := 0; i < skill.n; i++ {
			topic.AppendDetail(&content.Detail{
				Description:    skill.name + " detail " + string(rune('a'+i)),
				QuestionID:     strp("id_" + skill.name + string(rune('a'+i))),
				QuestionText:   strp("Question " + string(rune('a'+i)) + "?"),
				ExpectedAnswer: strp("Yes"),
			})
		}
	}
	return tree
}

func TestPoolSourceStratifies(t *testing.T) {
	src := NewPoolSource(pooledTree(), rand.New(rand.NewPCG(7, 7)))
	set, err := src.Generate(context.Background(), "AZ-900", 4, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(set.Questions) != 4 {
		t.Fatalf("questions = %d, want 4", len(set.Questions))
	}
	counts := make(map[string]int)
	for _, q := range set.Questions {
		counts[q.SkillArea]++
		if q.Type != TypeYesNo {
			t.Errorf("pool question type = %s", q.Type)
		}
		if q.ExpectedAnswer == "" {
			t.Errorf("pool question %s missing expected answer", q.QuestionID)
		}
	}
	if counts["Describe cloud concepts"] != 2 || counts["Describe Azure architecture"] != 2 {
		t.Errorf("stratified split = %v, want 2+2", counts)
	}
	if set.Source != "pool" {
		t.Errorf("source = %s", set.Source)
	}
}

func TestPoolSourceNoQuestionsIsActionable(t *testing.T) {
	tree := content.NewTree()
	tree.EnsureExam("AZ-900").EnsureSkillArea("S").EnsureSubtopic("T").
		AppendDetail(&content.Detail{Description: "bare"})

	_, err := NewPoolSource(tree, nil).Generate(context.Background(), "AZ-900", 4, 0)
	if err == nil || !strings.Contains(err.Error(), "enrich") {
		t.Fatalf("err = %v, want a hint to run enrich", err)
	}
}

func TestPoolSourceUnknownExam(t *testing.T) {
	_, err := NewPoolSource(content.NewTree(), nil).Generate(context.Background(), "SC-900", 4, 0)
	if err == nil {
		t.Fatal("expected error for unknown exam")
	}
}

func TestLiveSourceParsesStructuredResponse(t *testing.T) {
	canned := map[string]any{
		"questions": []map[string]any{
			{"type": "yes_no", "skill_area": "Describe cloud concepts", "question": "Is IaaS a service model?", "expected_answer": "Yes"},
			{"type": "qualitative", "skill_area": "Describe cloud concepts", "question": "Explain elasticity.", "scoring_criteria": "Mentions scale on demand"},
		},
	}
	raw, _ := json.Marshal(canned)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})

	src := NewLiveSource(mock, pooledTree())
	set, err := src.Generate(context.Background(), "AZ-900", 1, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("llm calls = %d, want 1", mock.CallCount())
	}
	if len(set.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(set.Questions))
	}
	if set.Questions[0].Type != TypeYesNo || set.Questions[0].ExpectedAnswer != "Yes" {
		t.Errorf("yes/no question mangled: %+v", set.Questions[0])
	}
	if set.Questions[1].Type != TypeQualitative || set.Questions[1].ScoringCriteria == "" {
		t.Errorf("qualitative question mangled: %+v", set.Questions[1])
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "question_set" {
		t.Error("request missing the question_set schema")
	}
	if !strings.Contains(req.Messages[0].Content, "Exam: AZ-900") {
		t.Error("prompt does not include the exam outline")
	}
}

func TestLiveSourceUnknownExam(t *testing.T) {
	src := NewLiveSource(llm.NewMockProvider(), content.NewTree())
	if _, err := src.Generate(context.Background(), "XX-000", 1, 1); err == nil {
		t.Fatal("expected error for unknown exam")
	}
}

func TestSetYesNoFilter(t *testing.T) {
	set := &Set{Questions: []Question{
		{Type: TypeYesNo, Question: "a"},
		{Type: TypeQualitative, Question: "b"},
		{Type: TypeYesNo, Question: "c"},
	}}
	got := set.YesNo()
	if len(got) != 2 || got[0].Question != "a" || got[1].Question != "c" {
		t.Fatalf("YesNo() = %+v", got)
	}
}
