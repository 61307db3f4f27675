package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
)

func quietWarnings(t *testing.T) {
	t.Helper()
	old := warnf
	warnf = func(string, ...any) {}
	t.Cleanup(func() { warnf = old })
}

func testOrchestrator(t *testing.T, provider llm.Provider, workers int) (*Orchestrator, files.Dir) {
	t.Helper()
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	o := New(provider, dir, workers)
	o.sleep = func(time.Duration) {}
	return o, dir
}

func treeWithDetails(descs ...string) *content.Tree {
	tree := content.NewTree()
	topic := tree.EnsureExam("AZ-900").
		EnsureSkillArea("Describe cloud concepts").
		EnsureSubtopic("Cloud models")
	for _, d := range descs {
		topic.AppendDetail(&content.Detail{Description: d})
	}
	return tree
}

func detailResponse(questions ...[2]string) llm.MockResponse {
	payload := map[string]any{"questions": []map[string]string{}}
	qs := payload["questions"].([]map[string]string)
	for _, q := range questions {
		qs = append(qs, map[string]string{"question_text": q[0], "expected_answer": q[1]})
	}
	payload["questions"] = qs
	raw, _ := json.Marshal(payload)
	return llm.MockResponse{Content: raw}
}

func interimFiles(t *testing.T, dir files.Dir) []string {
	t.Helper()
	interim, err := dir.InterimDir()
	if err != nil {
		t.Fatal(err)
	}
	matches, err := filepath.Glob(filepath.Join(interim, "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestGenerateAttachesQuestionsAndCleansInterim(t *testing.T) {
	mock := llm.NewMockProvider(
		detailResponse([2]string{"Is A true?", "Yes"}, [2]string{"Is B false?", "No"}),
	)
	o, dir := testOrchestrator(t, mock, 2)
	tree := treeWithDetails("Define cloud computing")

	stats, err := o.GenerateForExam(context.Background(), tree, "AZ-900", 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats.Tasks != 1 || stats.Succeeded != 1 || stats.QuestionsGenerated != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	d := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Define cloud computing")
	if !d.HasQuestion() || *d.QuestionText != "Is A true?" {
		t.Fatalf("primary not attached: %+v", d)
	}
	if len(d.AlternativeQuestions) != 1 || *d.AlternativeQuestions[0].QuestionText != "Is B false?" {
		t.Fatalf("alternatives = %+v", d.AlternativeQuestions)
	}
	if d.QuestionID == nil || *d.QuestionID == "" {
		t.Error("primary missing question id")
	}
	if *d.QuestionID == *d.AlternativeQuestions[0].QuestionID {
		t.Error("primary and alternative share an id")
	}

	if left := interimFiles(t, dir); len(left) != 0 {
		t.Errorf("interim files left after merge: %v", left)
	}
}

func TestGenerateZeroDetailsMakesNoCalls(t *testing.T) {
	mock := llm.NewMockProvider()
	o, dir := testOrchestrator(t, mock, 3)
	tree := treeWithDetails()

	stats, err := o.GenerateForExam(context.Background(), tree, "AZ-900", 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats.Tasks != 0 {
		t.Fatalf("stats = %+v, want zero tasks", stats)
	}
	if mock.CallCount() != 0 {
		t.Errorf("llm calls = %d, want 0", mock.CallCount())
	}
	if left := interimFiles(t, dir); len(left) != 0 {
		t.Errorf("interim files created: %v", left)
	}
}

func TestGenerateDeduplicatesDetailDescriptions(t *testing.T) {
	mock := llm.NewMockProvider(detailResponse([2]string{"Q?", "Yes"}))
	o, _ := testOrchestrator(t, mock, 1)

	tree := treeWithDetails("Same detail")
	tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		EnsureSubtopic("Another topic").
		AppendDetail(&content.Detail{Description: "Same detail"})

	stats, err := o.GenerateForExam(context.Background(), tree, "AZ-900", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats.Tasks != 1 || mock.CallCount() != 1 {
		t.Fatalf("tasks = %d calls = %d, want 1 each", stats.Tasks, mock.CallCount())
	}
}

func TestGenerateIsolatesFailures(t *testing.T) {
	quietWarnings(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("model unavailable")},
		detailResponse([2]string{"Q?", "Yes"}),
	)
	o, dir := testOrchestrator(t, mock, 1)
	tree := treeWithDetails("First detail", "Second detail")

	stats, err := o.GenerateForExam(context.Background(), tree, "AZ-900", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats.Failed != 1 || stats.Succeeded != 1 {
		t.Fatalf("stats = %+v, want one failure and one success", stats)
	}

	topic := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").FindSubtopic("Cloud models")
	var withQuestion int
	for _, d := range topic.Details {
		if d.HasQuestion() {
			withQuestion++
		}
	}
	if withQuestion != 1 {
		t.Errorf("details with questions = %d, want 1", withQuestion)
	}
	if left := interimFiles(t, dir); len(left) != 0 {
		t.Errorf("interim files left: %v", left)
	}
}

func TestGenerateUnknownExam(t *testing.T) {
	o, _ := testOrchestrator(t, llm.NewMockProvider(), 1)
	if _, err := o.GenerateForExam(context.Background(), content.NewTree(), "XX-000", 1); err == nil {
		t.Fatal("expected error for unknown exam")
	}
}

func TestGenerateManyDetailsAcrossWorkers(t *testing.T) {
	mock := llm.NewMockProvider()
	var descs []string
	for i := 0; i < 12; i++ {
		descs = append(descs, fmt.Sprintf("Detail %d", i))
		mock.AddResponse(detailResponse([2]string{fmt.Sprintf("Question %d?", i), "Yes"}))
	}
	o, _ := testOrchestrator(t, mock, 3)
	tree := treeWithDetails(descs...)

	stats, err := o.GenerateForExam(context.Background(), tree, "AZ-900", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stats.Succeeded != 12 || mock.CallCount() != 12 {
		t.Fatalf("stats = %+v calls = %d", stats, mock.CallCount())
	}
	topic := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").FindSubtopic("Cloud models")
	for _, d := range topic.Details {
		if !d.HasQuestion() {
			t.Errorf("detail %q missing question", d.Description)
		}
	}
}

func TestRecoverPendingMergesAndDeletesFragments(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tree := treeWithDetails("Define cloud computing")

	// Simulate a crash: an interim fragment exists but was never merged.
	id, q, a := "az-900_cloud_concepts_deadbeef", "Recovered?", "Yes"
	fragment := content.NewTree()
	fragment.EnsureExam("AZ-900").
		EnsureSkillArea("Describe cloud concepts").
		EnsureSubtopic("Cloud models").
		AppendDetail(&content.Detail{
			Description:    "Define cloud computing",
			QuestionID:     &id,
			QuestionText:   &q,
			ExpectedAnswer: &a,
		})
	interim, err := dir.InterimDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := files.SaveJSON(filepath.Join(interim, "az-900_cloud-models_deadbeef.json"), fragment); err != nil {
		t.Fatal(err)
	}

	recovered, err := RecoverPending(dir, tree)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if recovered != 1 {
		t.Fatalf("recovered = %d, want 1", recovered)
	}
	d := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Define cloud computing")
	if !d.HasQuestion() || *d.QuestionID != id {
		t.Fatalf("fragment not merged: %+v", d)
	}
	if left := interimFiles(t, dir); len(left) != 0 {
		t.Errorf("interim files left after recovery: %v", left)
	}
}

func TestRecoverPendingSkipsCorruptFragment(t *testing.T) {
	quietWarnings(t)
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	interim, err := dir.InterimDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(interim, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	recovered, err := RecoverPending(dir, content.NewTree())
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if recovered != 0 {
		t.Fatalf("recovered = %d, want 0", recovered)
	}
	// The corrupt file stays for inspection.
	if left := interimFiles(t, dir); len(left) != 1 {
		t.Errorf("corrupt fragment was deleted: %v", left)
	}
}

func TestRecoverPendingEmptyDir(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	recovered, err := RecoverPending(dir, content.NewTree())
	if err != nil || recovered != 0 {
		t.Fatalf("recovered = %d, err = %v", recovered, err)
	}
}
