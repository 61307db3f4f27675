// Package simulation administers a loaded question set one question at a
// time and appends finished runs to the per-exam run log.
package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/quiz"
)

// State is the engine lifecycle phase.
type State int

const (
	StateNotLoaded State = iota
	StateInProgress
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// AnsweredQuestion is one attempt record in a run. Scoring is never done
// locally; the record carries the expected answer or scoring criteria for
// the external grader.
type AnsweredQuestion struct {
	QuestionID      string `json:"question_id,omitempty"`
	Type            string `json:"type"`
	SkillArea       string `json:"skill_area"`
	Question        string `json:"question"`
	UserAnswer      string `json:"user_answer"`
	ExpectedAnswer  string `json:"expected_answer,omitempty"`
	ScoringCriteria string `json:"scoring_criteria,omitempty"`
}

// Run is one completed (or abandoned) simulation session.
type Run struct {
	RunID              string             `json:"run_id"`
	ExamCode           string             `json:"exam_code"`
	Timestamp          time.Time          `json:"timestamp"`
	SamplingMethod     string             `json:"sampling_method"`
	QuestionsAttempted []AnsweredQuestion `json:"questions_attempted"`
}

// Engine walks a question set from first to last. Not safe for concurrent
// use; the interactive screen drives it from a single goroutine.
type Engine struct {
	state     State
	examCode  string
	method    string
	questions []quiz.Question
	answers   []AnsweredQuestion
	index     int
}

// NewEngine returns an engine in the NotLoaded state.
func NewEngine() *Engine {
	return &Engine{state: StateNotLoaded}
}

// Load installs a question set and moves to InProgress. demoMode filters
// the set down to yes/no questions first. An empty (post-filter) set is an
// error and the engine stays NotLoaded.
func (e *Engine) Load(set *quiz.Set, demoMode bool) error {
	questions := set.Questions
	if demoMode {
		questions = set.YesNo()
	}
	if len(questions) == 0 {
		return fmt.Errorf("question set for %s has no usable questions", set.ExamCode)
	}

	method := "stratified"
	if set.Source == "live" {
		method = "ai_generated"
	}

	e.state = StateInProgress
	e.examCode = set.ExamCode
	e.method = method
	e.questions = questions
	e.answers = make([]AnsweredQuestion, 0, len(questions))
	e.index = 0
	return nil
}

// State returns the current lifecycle phase.
func (e *Engine) State() State { return e.state }

// Total returns the number of loaded questions.
func (e *Engine) Total() int { return len(e.questions) }

// Index returns the zero-based position of the current question.
func (e *Engine) Index() int { return e.index }

// Current returns the question awaiting an answer.
func (e *Engine) Current() (quiz.Question, error) {
	if e.state != StateInProgress {
		return quiz.Question{}, fmt.Errorf("no question available in state %s", e.state)
	}
	return e.questions[e.index], nil
}

// SubmitAnswer records the answer for the current question and advances.
// Answering the last question moves the engine to Complete.
func (e *Engine) SubmitAnswer(answer string) error {
	if e.state != StateInProgress {
		return fmt.Errorf("cannot answer in state %s", e.state)
	}
	q := e.questions[e.index]
	e.answers = append(e.answers, AnsweredQuestion{
		QuestionID:      q.QuestionID,
		Type:            q.Type,
		SkillArea:       q.SkillArea,
		Question:        q.Question,
		UserAnswer:      answer,
		ExpectedAnswer:  q.ExpectedAnswer,
		ScoringCriteria: q.ScoringCriteria,
	})
	e.index++
	if e.index == len(e.questions) {
		e.state = StateComplete
	}
	return nil
}

// GoBack steps to the previous question and reports whether it moved.
// It works from Complete too, reopening the session. The answer already
// recorded for that question is retained; answering again appends a
// second record rather than replacing the first.
func (e *Engine) GoBack() bool {
	if e.state == StateNotLoaded || e.index == 0 {
		return false
	}
	e.index--
	e.state = StateInProgress
	return true
}

// IsComplete reports whether every question has been answered, i.e. the
// index has reached the end of the set.
func (e *Engine) IsComplete() bool {
	return e.state != StateNotLoaded && e.index == len(e.questions)
}

// Run snapshots the session as a run record.
func (e *Engine) Run() Run {
	answers := make([]AnsweredQuestion, len(e.answers))
	copy(answers, e.answers)
	return Run{
		RunID:              uuid.NewString(),
		ExamCode:           e.examCode,
		Timestamp:          time.Now().UTC(),
		SamplingMethod:     e.method,
		QuestionsAttempted: answers,
	}
}

// Reset returns the engine to NotLoaded, dropping the session.
func (e *Engine) Reset() {
	*e = Engine{state: StateNotLoaded}
}

// Save appends the finished session to the exam's run log and returns the
// run. Only a Complete session may be saved.
func (e *Engine) Save(dir files.Dir) (Run, error) {
	if e.state != StateComplete {
		return Run{}, fmt.Errorf("cannot save in state %s", e.state)
	}
	run := e.Run()
	if err := AppendRun(dir, run); err != nil {
		return Run{}, err
	}
	return run, nil
}
