package content

import (
	"fmt"
	"strings"
	"testing"
)

func strp(s string) *string { return &s }

func baseTree() *Tree {
	tree := NewTree()
	exam := tree.EnsureExam("AZ-900")
	exam.Name = "Azure Fundamentals"
	skill := exam.EnsureSkillArea("Describe cloud concepts")
	topic := skill.EnsureSubtopic("Cloud models")
	topic.AppendDetail(&Detail{Description: "Define cloud computing"})
	topic.AppendDetail(NewLegacyDetail("Describe the shared responsibility model"))
	return tree
}

func fragmentWith(desc string, d *Detail) *Tree {
	frag := NewTree()
	topic := frag.EnsureExam("AZ-900").
		EnsureSkillArea("Describe cloud concepts").
		EnsureSubtopic("Cloud models")
	d.Description = desc
	topic.AppendDetail(d)
	return frag
}

func captureWarnings(t *testing.T) *[]string {
	t.Helper()
	var got []string
	old := warnf
	warnf = func(format string, args ...any) {
		got = append(got, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { warnf = old })
	return &got
}

func TestMergeAttachesQuestionToBareDetail(t *testing.T) {
	base := baseTree()
	frag := fragmentWith("Define cloud computing", &Detail{
		QuestionID:     strp("az-900_des_11111111"),
		QuestionText:   strp("Is IaaS a cloud service model?"),
		ExpectedAnswer: strp("Yes"),
	})

	stats := Merge(base, frag)
	if stats.QuestionsAttached != 1 {
		t.Fatalf("QuestionsAttached = %d, want 1", stats.QuestionsAttached)
	}
	d := base.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Define cloud computing")
	if !d.HasQuestion() || *d.QuestionID != "az-900_des_11111111" {
		t.Errorf("question not attached: %+v", d)
	}
}

func TestMergeKeepsExistingPrimaryAndAccumulatesAlternatives(t *testing.T) {
	base := baseTree()
	d := base.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Define cloud computing")
	d.QuestionID = strp("az-900_des_00000000")
	d.QuestionText = strp("original")
	d.ExpectedAnswer = strp("Yes")

	frag := fragmentWith("Define cloud computing", &Detail{
		QuestionID:     strp("az-900_des_11111111"),
		QuestionText:   strp("incoming"),
		ExpectedAnswer: strp("No"),
	})

	stats := Merge(base, frag)
	if stats.AlternativesAdded != 1 || stats.QuestionsAttached != 0 {
		t.Fatalf("stats = %+v, want 1 alternative and 0 attached", stats)
	}
	if *d.QuestionID != "az-900_des_00000000" {
		t.Errorf("primary was replaced: %s", *d.QuestionID)
	}
	if len(d.AlternativeQuestions) != 1 || *d.AlternativeQuestions[0].QuestionID != "az-900_des_11111111" {
		t.Errorf("alternatives = %+v", d.AlternativeQuestions)
	}

	// Re-merging the same fragment appends again; dedupe is a separate pass.
	Merge(base, frag)
	if len(d.AlternativeQuestions) != 2 {
		t.Fatalf("alternatives after re-merge = %d, want 2", len(d.AlternativeQuestions))
	}
	d.DedupeAlternatives()
	if len(d.AlternativeQuestions) != 1 {
		t.Fatalf("alternatives after dedupe = %d, want 1", len(d.AlternativeQuestions))
	}
}

func TestMergeMigratesLegacyDetail(t *testing.T) {
	base := baseTree()
	frag := fragmentWith("Describe the shared responsibility model", &Detail{
		QuestionID:     strp("az-900_des_22222222"),
		QuestionText:   strp("Is the customer responsible for data?"),
		ExpectedAnswer: strp("Yes"),
	})

	stats := Merge(base, frag)
	if stats.LegacyMigrated != 1 {
		t.Fatalf("LegacyMigrated = %d, want 1", stats.LegacyMigrated)
	}
	d := base.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Describe the shared responsibility model")
	if d.IsLegacy() {
		t.Error("detail still marked legacy after merge")
	}
	if !d.HasQuestion() {
		t.Error("migrated detail did not receive the question")
	}
}

func TestMergeAppendsUnknownDetail(t *testing.T) {
	base := baseTree()
	frag := fragmentWith("Compare public and private clouds", &Detail{
		QuestionID:   strp("az-900_des_33333333"),
		QuestionText: strp("Is a private cloud single-tenant?"),
	})

	stats := Merge(base, frag)
	if stats.DetailsAdded != 1 {
		t.Fatalf("DetailsAdded = %d, want 1", stats.DetailsAdded)
	}
	topic := base.Exam("AZ-900").FindSkillArea("Describe cloud concepts").FindSubtopic("Cloud models")
	if topic.FindDetail("Compare public and private clouds") == nil {
		t.Error("new detail not appended")
	}
}

func TestMergeSkipsUnknownLevelsWithWarning(t *testing.T) {
	warnings := captureWarnings(t)
	base := baseTree()

	frag := NewTree()
	frag.EnsureExam("SC-900").EnsureSkillArea("Anything").EnsureSubtopic("T").
		AppendDetail(&Detail{Description: "d"})
	frag.EnsureExam("AZ-900").EnsureSkillArea("No such skill").EnsureSubtopic("T").
		AppendDetail(&Detail{Description: "d"})
	frag.Exam("AZ-900").EnsureSkillArea("Describe cloud concepts").
		EnsureSubtopic("No such topic").AppendDetail(&Detail{Description: "d"})

	stats := Merge(base, frag)
	if stats.ExamsSkipped != 1 || stats.SkillsSkipped != 1 || stats.TopicsSkipped != 1 {
		t.Fatalf("stats = %+v, want one skip per level", stats)
	}
	if base.Exam("SC-900") != nil {
		t.Error("merge must not create exams")
	}
	if len(*warnings) != 3 {
		t.Fatalf("warnings = %d, want 3: %v", len(*warnings), *warnings)
	}
	for _, w := range *warnings {
		if !strings.Contains(w, "skipping") {
			t.Errorf("warning %q should mention skipping", w)
		}
	}
}

func TestValidateAndFixQuestionIDs(t *testing.T) {
	base := baseTree()
	topic := base.Exam("AZ-900").FindSkillArea("Describe cloud concepts").FindSubtopic("Cloud models")
	d := topic.FindDetail("Define cloud computing")
	d.QuestionID = strp("dup_id")
	d.QuestionText = strp("q1")
	topic.AppendDetail(&Detail{
		Description:  "Another detail",
		QuestionID:   strp("dup_id"),
		QuestionText: strp("q2"),
	})
	topic.AppendDetail(&Detail{
		Description:  "Missing id",
		QuestionText: strp("q3"),
	})

	report := ValidateQuestionIDs(base)
	if report.Total != 3 || report.Missing != 1 || len(report.Duplicates) != 1 {
		t.Fatalf("report = %+v", report)
	}

	fixed := FixQuestionIDs(base, func(exam, skill, topicName, desc, question string) string {
		return "fixed_" + desc
	})
	if fixed != 2 {
		t.Fatalf("fixed = %d, want 2", fixed)
	}
	after := ValidateQuestionIDs(base)
	if after.HasProblems() {
		t.Errorf("report after fix = %+v", after)
	}
}
