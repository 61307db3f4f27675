// Package generate enriches the content tree with per-detail questions. A
// bounded worker pool fans one LLM call out per detail, checkpoints every
// result to an interim file, and folds the aggregate back into the tree in
// a single merge once all workers drain.
package generate

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
	"github.com/abhisek/certquiz/internal/qid"
)

// Task is one unit of generation work: produce questions for a single
// detail of an exam outline.
type Task struct {
	ExamCode  string
	SkillArea string
	Topic     string
	Detail    string
	Count     int
}

// Stats summarizes one generation run.
type Stats struct {
	Tasks              int
	Succeeded          int
	Failed             int
	QuestionsGenerated int
}

// Orchestrator drives parallel question generation for an exam.
type Orchestrator struct {
	provider llm.Provider
	dir      files.Dir
	workers  int

	// sleep and delay are swapped out in tests.
	sleep func(time.Duration)
	delay func() time.Duration
}

// New builds an orchestrator. workers <= 0 falls back to 1.
func New(provider llm.Provider, dir files.Dir, workers int) *Orchestrator {
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		provider: provider,
		dir:      dir,
		workers:  workers,
		sleep:    time.Sleep,
		delay: func() time.Duration {
			// 0.5s-2s of spread keeps burst traffic off the provider.
			return 500*time.Millisecond + time.Duration(rand.Int64N(int64(1500*time.Millisecond)))
		},
	}
}

// GenerateForExam produces questionsPerDetail questions for every detail of
// examCode, merges the results into tree, and removes its interim files.
// The tree is mutated; the caller saves it.
func (o *Orchestrator) GenerateForExam(ctx context.Context, tree *content.Tree, examCode string, questionsPerDetail int) (Stats, error) {
	var stats Stats

	exam := tree.Exam(examCode)
	if exam == nil {
		return stats, fmt.Errorf("exam %s not found in content tree", examCode)
	}
	if questionsPerDetail < 1 {
		questionsPerDetail = 1
	}

	tasks := enumerateTasks(examCode, exam, questionsPerDetail)
	stats.Tasks = len(tasks)
	if len(tasks) == 0 {
		return stats, nil
	}

	interimDir, err := o.dir.InterimDir()
	if err != nil {
		return stats, err
	}

	taskCh := make(chan Task)
	type result struct {
		task        Task
		detail      *content.Detail
		interimPath string
		err         error
	}
	resultCh := make(chan result, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				o.sleep(o.delay())
				detail, err := o.generateDetail(ctx, task)
				res := result{task: task, detail: detail, err: err}
				if err == nil {
					res.interimPath, res.err = writeInterim(interimDir, task, detail)
				}
				resultCh <- res
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(resultCh)

	fragment := content.NewTree()
	var interimPaths []string
	for res := range resultCh {
		topic := fragment.EnsureExam(res.task.ExamCode).
			EnsureSkillArea(res.task.SkillArea).
			EnsureSubtopic(res.task.Topic)
		if res.err != nil {
			warnf("generation failed for %q: %v", res.task.Detail, res.err)
			stats.Failed++
			topic.AppendDetail(&content.Detail{
				Description: res.task.Detail,
				SkillArea:   res.task.SkillArea,
			})
			continue
		}
		stats.Succeeded++
		stats.QuestionsGenerated += 1 + len(res.detail.AlternativeQuestions)
		topic.AppendDetail(res.detail)
		interimPaths = append(interimPaths, res.interimPath)
	}

	content.Merge(tree, fragment)

	// Interim files exist to survive a crash before this point; once the
	// merge has landed they are deleted.
	for _, p := range interimPaths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			warnf("could not remove interim file %s: %v", p, err)
		}
	}

	if ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

// enumerateTasks walks the exam and emits one task per unique detail
// description.
func enumerateTasks(examCode string, exam *content.Exam, count int) []Task {
	seen := make(map[string]bool)
	var tasks []Task
	for _, skill := range exam.SkillsMeasured {
		for _, topic := range skill.Subtopics {
			for _, d := range topic.Details {
				if seen[d.Description] {
					continue
				}
				seen[d.Description] = true
				tasks = append(tasks, Task{
					ExamCode:  examCode,
					SkillArea: skill.SkillArea,
					Topic:     topic.Topic,
					Detail:    d.Description,
					Count:     count,
				})
			}
		}
	}
	return tasks
}

const detailSystemPrompt = `You are an expert certification exam question writer. Write yes/no questions that test the given learning detail. Each question must have an unambiguous Yes or No answer and be answerable by someone who has mastered the detail.`

func detailSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "detail_questions",
		Description: "Yes/no questions for one learning detail",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question_text":   map[string]any{"type": "string"},
							"expected_answer": map[string]any{"type": "string", "enum": []any{"Yes", "No"}},
						},
						"required":             []any{"question_text", "expected_answer"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// generateDetail runs one structured LLM call and shapes the candidates:
// first one becomes the primary question, the rest alternatives, each
// stamped with its identifier.
func (o *Orchestrator) generateDetail(ctx context.Context, task Task) (*content.Detail, error) {
	prompt := fmt.Sprintf(
		"Exam: %s\nSkill area: %s\nTopic: %s\nDetail: %s\n\nWrite exactly %d yes/no questions for this detail.",
		task.ExamCode, task.SkillArea, task.Topic, task.Detail, task.Count,
	)

	resp, err := o.provider.Generate(llm.WithPurpose(ctx, "detail-gen"), llm.Request{
		System:    detailSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    detailSchema(),
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []struct {
			QuestionText   string `json:"question_text"`
			ExpectedAnswer string `json:"expected_answer"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("decode detail questions: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}

	detail := &content.Detail{
		Description: task.Detail,
		SkillArea:   task.SkillArea,
	}
	for i, q := range payload.Questions {
		id := qid.New(task.ExamCode, task.SkillArea, task.Topic, task.Detail, q.QuestionText)
		text, answer := q.QuestionText, q.ExpectedAnswer
		if i == 0 {
			detail.QuestionID = &id
			detail.QuestionText = &text
			detail.ExpectedAnswer = &answer
			continue
		}
		detail.AlternativeQuestions = append(detail.AlternativeQuestions, content.AlternativeQuestion{
			QuestionID:     &id,
			QuestionText:   &text,
			ExpectedAnswer: &answer,
		})
	}
	return detail, nil
}

// writeInterim checkpoints one task's result as a single-detail fragment.
// The name keys on exam, topic, and detail hash so a retried task
// overwrites its own leftover instead of stacking a duplicate.
func writeInterim(interimDir string, task Task, detail *content.Detail) (string, error) {
	fragment := content.NewTree()
	fragment.EnsureExam(task.ExamCode).
		EnsureSkillArea(task.SkillArea).
		EnsureSubtopic(task.Topic).
		AppendDetail(detail)

	sum := md5.Sum([]byte(task.Detail))
	name := fmt.Sprintf("%s_%s_%s.json", task.ExamCode, slug(task.Topic), hex.EncodeToString(sum[:])[:8])
	path := filepath.Join(interimDir, name)
	if err := files.SaveJSON(path, fragment); err != nil {
		return "", fmt.Errorf("write interim fragment: %w", err)
	}
	return path, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}
