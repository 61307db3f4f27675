// Package export turns studied content into reinforcement artifacts:
// flashcard CSVs, concept images, and a recap podcast.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/files"
)

// Flashcard is one question/answer study card.
type Flashcard struct {
	Question string
	Answer   string
}

// BuildFlashcards derives cards from an exam's outline: one overview card
// per skill area listing its topics, then one card per topic listing its
// detail descriptions. Legacy bare-string details are included like any
// other.
func BuildFlashcards(tree *content.Tree, examCode string) ([]Flashcard, error) {
	exam := tree.Exam(examCode)
	if exam == nil {
		return nil, fmt.Errorf("exam %s not found in content tree", examCode)
	}

	var cards []Flashcard
	for _, skill := range exam.SkillsMeasured {
		var topics []string
		for _, topic := range skill.Subtopics {
			topics = append(topics, topic.Topic)
		}
		if len(topics) > 0 {
			cards = append(cards, Flashcard{
				Question: fmt.Sprintf("What are the main topics in %q? (%s)", skill.SkillArea, examCode),
				Answer:   strings.Join(topics, "; "),
			})
		}
		for _, topic := range skill.Subtopics {
			var details []string
			for _, d := range topic.Details {
				details = append(details, d.Description)
			}
			if len(details) == 0 {
				continue
			}
			cards = append(cards, Flashcard{
				Question: fmt.Sprintf("What should you know about %q? (%s)", topic.Topic, skill.SkillArea),
				Answer:   strings.Join(details, "; "),
			})
		}
	}
	return cards, nil
}

// WriteFlashcards writes the exam's cards as a two-column CSV with a
// Question,Answer header, overwriting any previous export.
func WriteFlashcards(dir files.Dir, examCode string, cards []Flashcard) (string, error) {
	path := dir.FlashcardsFile(examCode)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create flashcards file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Question", "Answer"}); err != nil {
		return "", fmt.Errorf("write flashcards header: %w", err)
	}
	for _, c := range cards {
		if err := w.Write([]string{c.Question, c.Answer}); err != nil {
			return "", fmt.Errorf("write flashcard: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush flashcards: %w", err)
	}
	return path, nil
}
