package content

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleDoc = `{
  "AZ-900": {
    "name": "Azure Fundamentals",
    "skills_measured": [
      {
        "skill_area": "Describe cloud concepts",
        "percentage": "25-30%",
        "subtopics": [
          {
            "topic": "Cloud models",
            "details": [
              {
                "description": "Define cloud computing",
                "question_id": "az-900_des_abcd1234",
                "question_text": "Is cloud computing on-demand?",
                "expected_answer": "Yes",
                "alternative_questions": []
              },
              "Describe the shared responsibility model"
            ]
          }
        ]
      }
    ]
  },
  "AI-900": {
    "name": "AI Fundamentals",
    "skills_measured": []
  }
}`

func TestUnmarshalPreservesExamOrder(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(sampleDoc), &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	codes := tree.ExamCodes()
	if len(codes) != 2 || codes[0] != "AZ-900" || codes[1] != "AI-900" {
		t.Fatalf("exam order = %v, want [AZ-900 AI-900]", codes)
	}
}

func TestLegacyDetailRoundTrip(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(sampleDoc), &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	topic := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").FindSubtopic("Cloud models")
	if topic == nil {
		t.Fatal("topic not found")
	}
	legacy := topic.FindDetail("Describe the shared responsibility model")
	if legacy == nil || !legacy.IsLegacy() {
		t.Fatalf("legacy detail not recognized: %+v", legacy)
	}

	out, err := json.Marshal(&tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"Describe the shared responsibility model"`) {
		t.Errorf("legacy detail not written back as bare string:\n%s", out)
	}
}

func TestFindUsesExactMatch(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(sampleDoc), &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	exam := tree.Exam("AZ-900")
	if exam.FindSkillArea("describe cloud concepts") != nil {
		t.Error("skill lookup should be case-sensitive")
	}
	if exam.FindSkillArea("Describe cloud concepts") == nil {
		t.Error("exact skill lookup failed")
	}
}

func TestEnsureCreatesMissingLevels(t *testing.T) {
	tree := NewTree()
	exam := tree.EnsureExam("DP-900")
	skill := exam.EnsureSkillArea("Core data concepts")
	topic := skill.EnsureSubtopic("Data workloads")
	topic.AppendDetail(&Detail{Description: "Batch vs streaming"})

	if tree.EnsureExam("DP-900") != exam {
		t.Error("EnsureExam should return the existing exam")
	}
	if exam.EnsureSkillArea("Core data concepts") != skill {
		t.Error("EnsureSkillArea should return the existing skill")
	}
	if topic.FindDetail("Batch vs streaming") == nil {
		t.Error("appended detail not findable")
	}
}

func TestDedupeAlternatives(t *testing.T) {
	id1, id2 := "x_y_11111111", "x_y_22222222"
	q := "q"
	d := &Detail{
		QuestionID:   &id1,
		QuestionText: &q,
		AlternativeQuestions: []AlternativeQuestion{
			{QuestionID: &id1, QuestionText: &q},
			{QuestionID: &id2, QuestionText: &q},
			{QuestionID: &id2, QuestionText: &q},
		},
	}
	d.DedupeAlternatives()
	if len(d.AlternativeQuestions) != 1 {
		t.Fatalf("alternatives after dedupe = %d, want 1", len(d.AlternativeQuestions))
	}
	if *d.AlternativeQuestions[0].QuestionID != id2 {
		t.Errorf("kept alternative = %s, want %s", *d.AlternativeQuestions[0].QuestionID, id2)
	}
}

func TestPromptContextListsHierarchy(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(sampleDoc), &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	ctx := tree.PromptContext("AZ-900")
	for _, want := range []string{
		"Exam: AZ-900 - Azure Fundamentals",
		"Skill Area: Describe cloud concepts (25-30%)",
		"  Topic: Cloud models",
		"    - Define cloud computing",
		"    - Describe the shared responsibility model",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q:\n%s", want, ctx)
		}
	}
	if strings.Contains(ctx, "AI-900") {
		t.Error("context should only include the requested exam")
	}
}

func TestQuestionPairsSkipsUnanswered(t *testing.T) {
	var tree Tree
	if err := json.Unmarshal([]byte(sampleDoc), &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	pairs := tree.QuestionPairs()
	if len(pairs) != 1 {
		t.Fatalf("pairs = %d, want 1", len(pairs))
	}
	if pairs[0].Question != "Is cloud computing on-demand?" || pairs[0].Answer != "Yes" {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
	if pairs[0].SkillArea != "Describe cloud concepts" {
		t.Errorf("skill area = %q", pairs[0].SkillArea)
	}
}
