// Package content models the exam content tree (exam → skill area →
// subtopic → detail) and the merge algorithm that folds newly generated
// per-detail questions back into it.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Tree is the in-memory exam content document. It is the single
// authoritative store; generation mutates it only through Merge.
// Exam iteration preserves the key order of the source document.
type Tree struct {
	exams map[string]*Exam
	order []string
}

// Exam is one certification exam's content.
type Exam struct {
	Name           string       `json:"name"`
	SkillsMeasured []*SkillArea `json:"skills_measured"`

	skillIndex map[string]int
}

// SkillArea is a top-level exam category with a weighting percentage.
// The name is the join key for merge.
type SkillArea struct {
	SkillArea  string      `json:"skill_area"`
	Percentage string      `json:"percentage,omitempty"`
	Subtopics  []*Subtopic `json:"subtopics"`

	topicIndex map[string]int
}

// Subtopic groups details under a topic name, the merge join key.
type Subtopic struct {
	Topic   string    `json:"topic"`
	Details []*Detail `json:"details"`

	descIndex map[string]int
}

// Detail is the finest-grained content unit: a description plus zero or one
// primary question and any number of alternatives. Legacy documents store
// details as bare strings; those unmarshal into question-less Details with
// the legacy marker set and marshal back unchanged until a merge migrates
// them to object form.
type Detail struct {
	Description          string                `json:"description"`
	QuestionID           *string               `json:"question_id"`
	QuestionText         *string               `json:"question_text"`
	ExpectedAnswer       *string               `json:"expected_answer"`
	SkillArea            string                `json:"skill_area,omitempty"`
	AlternativeQuestions []AlternativeQuestion `json:"alternative_questions"`

	legacy bool
}

// AlternativeQuestion is an extra candidate question retained for variety.
type AlternativeQuestion struct {
	QuestionID     *string `json:"question_id"`
	QuestionText   *string `json:"question_text"`
	ExpectedAnswer *string `json:"expected_answer"`
}

// NewTree returns an empty content tree.
func NewTree() *Tree {
	return &Tree{exams: make(map[string]*Exam)}
}

// Exam returns the exam for code, or nil.
func (t *Tree) Exam(code string) *Exam {
	return t.exams[code]
}

// ExamCodes returns exam codes in document order.
func (t *Tree) ExamCodes() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of exams.
func (t *Tree) Len() int { return len(t.order) }

// AddExam inserts an exam under code, replacing any existing entry while
// keeping its position.
func (t *Tree) AddExam(code string, exam *Exam) {
	if t.exams == nil {
		t.exams = make(map[string]*Exam)
	}
	if _, exists := t.exams[code]; !exists {
		t.order = append(t.order, code)
	}
	t.exams[code] = exam
}

// EnsureExam returns the exam for code, creating an empty one if absent.
func (t *Tree) EnsureExam(code string) *Exam {
	if e := t.exams[code]; e != nil {
		return e
	}
	e := &Exam{}
	t.AddExam(code, e)
	return e
}

// FindSkillArea locates a skill area by exact name, using an index built on
// first lookup so repeated merges avoid linear scans.
func (e *Exam) FindSkillArea(name string) *SkillArea {
	if e.skillIndex == nil || len(e.skillIndex) != len(e.SkillsMeasured) {
		e.skillIndex = make(map[string]int, len(e.SkillsMeasured))
		for i, s := range e.SkillsMeasured {
			e.skillIndex[s.SkillArea] = i
		}
	}
	if i, ok := e.skillIndex[name]; ok {
		return e.SkillsMeasured[i]
	}
	return nil
}

// EnsureSkillArea returns the named skill area, appending one if absent.
func (e *Exam) EnsureSkillArea(name string) *SkillArea {
	if s := e.FindSkillArea(name); s != nil {
		return s
	}
	s := &SkillArea{SkillArea: name}
	e.SkillsMeasured = append(e.SkillsMeasured, s)
	e.skillIndex[name] = len(e.SkillsMeasured) - 1
	return s
}

// FindSubtopic locates a subtopic by exact topic name.
func (s *SkillArea) FindSubtopic(topic string) *Subtopic {
	if s.topicIndex == nil || len(s.topicIndex) != len(s.Subtopics) {
		s.topicIndex = make(map[string]int, len(s.Subtopics))
		for i, sub := range s.Subtopics {
			s.topicIndex[sub.Topic] = i
		}
	}
	if i, ok := s.topicIndex[topic]; ok {
		return s.Subtopics[i]
	}
	return nil
}

// EnsureSubtopic returns the named subtopic, appending one if absent.
func (s *SkillArea) EnsureSubtopic(topic string) *Subtopic {
	if sub := s.FindSubtopic(topic); sub != nil {
		return sub
	}
	sub := &Subtopic{Topic: topic}
	s.Subtopics = append(s.Subtopics, sub)
	s.topicIndex[topic] = len(s.Subtopics) - 1
	return sub
}

// FindDetail locates a detail by exact description match.
func (s *Subtopic) FindDetail(description string) *Detail {
	if s.descIndex == nil || len(s.descIndex) != len(s.Details) {
		s.descIndex = make(map[string]int, len(s.Details))
		for i, d := range s.Details {
			s.descIndex[d.Description] = i
		}
	}
	if i, ok := s.descIndex[description]; ok {
		return s.Details[i]
	}
	return nil
}

// AppendDetail adds a detail, keeping the description index current.
func (s *Subtopic) AppendDetail(d *Detail) {
	if s.descIndex == nil {
		s.FindDetail(d.Description)
	}
	s.Details = append(s.Details, d)
	s.descIndex[d.Description] = len(s.Details) - 1
}

// HasQuestion reports whether the detail carries a primary question.
func (d *Detail) HasQuestion() bool {
	return d.QuestionID != nil && d.QuestionText != nil
}

// IsLegacy reports whether this detail came from a bare-string entry.
func (d *Detail) IsLegacy() bool { return d.legacy }

// DedupeAlternatives removes alternative questions whose ID repeats either
// the primary question or an earlier alternative. Merge never calls this;
// it exists for callers that want idempotent re-merges.
func (d *Detail) DedupeAlternatives() {
	seen := make(map[string]bool)
	if d.QuestionID != nil {
		seen[*d.QuestionID] = true
	}
	kept := d.AlternativeQuestions[:0]
	for _, alt := range d.AlternativeQuestions {
		if alt.QuestionID != nil {
			if seen[*alt.QuestionID] {
				continue
			}
			seen[*alt.QuestionID] = true
		}
		kept = append(kept, alt)
	}
	d.AlternativeQuestions = kept
}

// UnmarshalJSON accepts both the document map form and preserves exam order.
func (t *Tree) UnmarshalJSON(data []byte) error {
	t.exams = make(map[string]*Exam)
	t.order = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("content document: expected top-level object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("content document: non-string exam code")
		}
		var exam Exam
		if err := dec.Decode(&exam); err != nil {
			return fmt.Errorf("exam %s: %w", code, err)
		}
		t.AddExam(code, &exam)
	}
	return nil
}

// MarshalJSON writes exams back in document order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(code)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(t.exams[code])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either a legacy bare string or the object form.
func (d *Detail) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = Detail{Description: s, legacy: true}
		return nil
	}

	type detailAlias Detail
	var alias detailAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*d = Detail(alias)
	return nil
}

// MarshalJSON writes legacy details back as bare strings so loading and
// saving an untouched document round-trips byte-compatibly.
func (d *Detail) MarshalJSON() ([]byte, error) {
	if d.legacy {
		return json.Marshal(d.Description)
	}
	type detailAlias Detail
	alias := detailAlias(*d)
	if alias.AlternativeQuestions == nil {
		alias.AlternativeQuestions = []AlternativeQuestion{}
	}
	return json.Marshal(alias)
}

// Migrate converts a legacy detail to object form in place. The description
// is retained; no question is attached.
func (d *Detail) Migrate() {
	d.legacy = false
}

// NewLegacyDetail builds a bare-string detail; used by tests and migration.
func NewLegacyDetail(description string) *Detail {
	return &Detail{Description: description, legacy: true}
}
