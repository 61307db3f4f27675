package export

import (
	"sort"
	"strings"

	"github.com/abhisek/certquiz/internal/quiz"
)

// ExtractConcepts pulls a deduplicated, sorted list of study concepts from
// targeted questions. Skill areas are always included; question texts are
// reduced with a few cheap heuristics rather than another model call.
func ExtractConcepts(questions []quiz.Question) []string {
	seen := make(map[string]string)
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" {
			return
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; !ok {
			seen[key] = c
		}
	}

	for _, q := range questions {
		add(q.SkillArea)
		if c := conceptFromQuestion(q.Question); c != "" {
			add(c)
		}
	}

	concepts := make([]string, 0, len(seen))
	for _, c := range seen {
		concepts = append(concepts, c)
	}
	sort.Strings(concepts)
	return concepts
}

// conceptFromQuestion reduces one question text to a concept phrase.
func conceptFromQuestion(text string) string {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "?"))
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)

	// "Explain the difference between X and Y" → "difference between X and Y"
	if strings.HasPrefix(lower, "explain") {
		if i := strings.Index(lower, "between"); i >= 0 {
			return text[i:]
		}
		return strings.TrimSpace(text[len("explain"):])
	}
	if strings.HasPrefix(lower, "what is ") {
		return strings.TrimSpace(text[len("what is "):])
	}
	if strings.HasPrefix(lower, "does ") {
		return strings.TrimSpace(text[len("does "):])
	}

	words := strings.Fields(text)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " ")
}
