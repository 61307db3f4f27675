// Package files manages the flat-file workspace: the directory holding the
// content tree, generated question sets, simulation results, exports, and
// interim recovery fragments.
package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the root of the flat-file workspace for one installation.
type Dir struct {
	root string
}

// Resolve returns the files directory, creating it if needed.
// Priority: explicit path argument, CERTQUIZ_FILES_DIR, then ./files.
func Resolve(explicit string) (Dir, error) {
	root := explicit
	if root == "" {
		root = os.Getenv("CERTQUIZ_FILES_DIR")
	}
	if root == "" {
		root = "files"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return Dir{}, fmt.Errorf("create files dir: %w", err)
	}
	return Dir{root: root}, nil
}

// Root returns the workspace root path.
func (d Dir) Root() string { return d.root }

// QuestionsFile is the generated question set for an exam, overwritten on
// each generation run.
func (d Dir) QuestionsFile(examCode string) string {
	return filepath.Join(d.root, fmt.Sprintf("questions_%s.json", examCode))
}

// ResultsFile is the append-only simulation run log for an exam.
func (d Dir) ResultsFile(examCode string) string {
	return filepath.Join(d.root, fmt.Sprintf("%s_results.json", examCode))
}

// TargetedQuestionsFile holds weak-area questions emitted by feedback.
func (d Dir) TargetedQuestionsFile(examCode string) string {
	return filepath.Join(d.root, fmt.Sprintf("%s_targeted_questions.json", examCode))
}

// FlashcardsFile is the CSV flashcard export for an exam.
func (d Dir) FlashcardsFile(examCode string) string {
	return filepath.Join(d.root, fmt.Sprintf("%s_flashcards.csv", examCode))
}

// EventLogFile is the append-only LLM request event log.
func (d Dir) EventLogFile() string {
	return filepath.Join(d.root, "llm_events.jsonl")
}

// InterimDir holds per-task recovery fragments written during question
// generation. Created on first use.
func (d Dir) InterimDir() (string, error) {
	p := filepath.Join(d.root, "tmp")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("create interim dir: %w", err)
	}
	return p, nil
}

// ImagesDir holds downloaded concept images. Created on first use.
func (d Dir) ImagesDir() (string, error) {
	p := filepath.Join(d.root, "images")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	return p, nil
}

// PodcastsDir holds synthesized podcast audio. Created on first use.
func (d Dir) PodcastsDir() (string, error) {
	p := filepath.Join(d.root, "podcasts")
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("create podcasts dir: %w", err)
	}
	return p, nil
}
