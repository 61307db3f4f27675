package content

// IDReport summarizes question identifier health across a tree.
type IDReport struct {
	Total      int
	Missing    int
	Duplicates map[string][]string // id → descriptions of the details carrying it
}

// HasProblems reports whether the tree needs attention.
func (r IDReport) HasProblems() bool {
	return r.Missing > 0 || len(r.Duplicates) > 0
}

// ValidateQuestionIDs walks every primary and alternative question and
// reports details missing an ID and IDs used more than once.
func ValidateQuestionIDs(t *Tree) IDReport {
	report := IDReport{Duplicates: make(map[string][]string)}
	seen := make(map[string][]string)

	record := func(id *string, desc string, hasQuestion bool) {
		if !hasQuestion {
			return
		}
		report.Total++
		if id == nil || *id == "" {
			report.Missing++
			return
		}
		seen[*id] = append(seen[*id], desc)
	}

	walkDetails(t, func(exam string, skill *SkillArea, topic *Subtopic, d *Detail) {
		record(d.QuestionID, d.Description, d.QuestionText != nil)
		for i := range d.AlternativeQuestions {
			alt := &d.AlternativeQuestions[i]
			record(alt.QuestionID, d.Description, alt.QuestionText != nil)
		}
	})

	for id, descs := range seen {
		if len(descs) > 1 {
			report.Duplicates[id] = descs
		}
	}
	return report
}

// FixQuestionIDs assigns a fresh identifier to every question that is
// missing one or repeats an earlier one. newID is called with the exam
// code, skill area name, topic, description, and question text, in that
// order; it mirrors the generator's stamping so fixed IDs stay stable.
// Returns the number of IDs rewritten.
func FixQuestionIDs(t *Tree, newID func(exam, skill, topic, desc, question string) string) int {
	fixed := 0
	seen := make(map[string]bool)

	fix := func(exam string, skill *SkillArea, topic *Subtopic, d *Detail, id **string, question *string) {
		if question == nil {
			return
		}
		if *id != nil && **id != "" && !seen[**id] {
			seen[**id] = true
			return
		}
		fresh := newID(exam, skill.SkillArea, topic.Topic, d.Description, *question)
		*id = &fresh
		seen[fresh] = true
		fixed++
	}

	walkDetails(t, func(exam string, skill *SkillArea, topic *Subtopic, d *Detail) {
		fix(exam, skill, topic, d, &d.QuestionID, d.QuestionText)
		for i := range d.AlternativeQuestions {
			alt := &d.AlternativeQuestions[i]
			fix(exam, skill, topic, d, &alt.QuestionID, alt.QuestionText)
		}
	})
	return fixed
}

// walkDetails visits every detail in document order.
func walkDetails(t *Tree, visit func(exam string, skill *SkillArea, topic *Subtopic, d *Detail)) {
	for _, code := range t.ExamCodes() {
		exam := t.Exam(code)
		for _, skill := range exam.SkillsMeasured {
			for _, topic := range skill.Subtopics {
				for _, d := range topic.Details {
					visit(code, skill, topic, d)
				}
			}
		}
	}
}
