package content

// MergeStats summarizes what a merge changed, for operator-facing output.
type MergeStats struct {
	ExamsSkipped      int
	SkillsSkipped     int
	TopicsSkipped     int
	DetailsAdded      int
	QuestionsAttached int
	AlternativesAdded int
	LegacyMigrated    int
}

// Merge folds incoming into base in place. Matching is by exact name at
// every level: exam code, skill area, topic, then detail description.
// A level present in incoming but absent from base is skipped with a
// warning instead of being created, so a mistyped fragment cannot grow a
// phantom branch in the authoritative tree.
//
// For a matched detail, base keeps its primary question if it has one; the
// incoming primary and all incoming alternatives are then appended as
// alternatives. Merging the same fragment twice therefore duplicates
// alternatives; callers wanting idempotence run DedupeAlternatives after.
func Merge(base, incoming *Tree) MergeStats {
	var stats MergeStats
	for _, code := range incoming.ExamCodes() {
		inExam := incoming.Exam(code)
		baseExam := base.Exam(code)
		if baseExam == nil {
			warnf("merge: exam %s not in content tree, skipping", code)
			stats.ExamsSkipped++
			continue
		}
		mergeExam(baseExam, inExam, &stats)
	}
	return stats
}

func mergeExam(base, incoming *Exam, stats *MergeStats) {
	for _, inSkill := range incoming.SkillsMeasured {
		baseSkill := base.FindSkillArea(inSkill.SkillArea)
		if baseSkill == nil {
			warnf("merge: skill area %q not found, skipping", inSkill.SkillArea)
			stats.SkillsSkipped++
			continue
		}
		mergeSkill(baseSkill, inSkill, stats)
	}
}

func mergeSkill(base, incoming *SkillArea, stats *MergeStats) {
	for _, inTopic := range incoming.Subtopics {
		baseTopic := base.FindSubtopic(inTopic.Topic)
		if baseTopic == nil {
			warnf("merge: topic %q not found under %q, skipping", inTopic.Topic, base.SkillArea)
			stats.TopicsSkipped++
			continue
		}
		mergeTopic(baseTopic, inTopic, stats)
	}
}

func mergeTopic(base, incoming *Subtopic, stats *MergeStats) {
	for _, inDetail := range incoming.Details {
		baseDetail := base.FindDetail(inDetail.Description)
		if baseDetail == nil {
			base.AppendDetail(inDetail)
			stats.DetailsAdded++
			continue
		}
		mergeDetail(baseDetail, inDetail, stats)
	}
}

func mergeDetail(base, incoming *Detail, stats *MergeStats) {
	if base.IsLegacy() {
		base.Migrate()
		stats.LegacyMigrated++
	}
	if incoming.SkillArea != "" && base.SkillArea == "" {
		base.SkillArea = incoming.SkillArea
	}
	if !base.HasQuestion() && incoming.HasQuestion() {
		base.QuestionID = incoming.QuestionID
		base.QuestionText = incoming.QuestionText
		base.ExpectedAnswer = incoming.ExpectedAnswer
		stats.QuestionsAttached++
	} else if incoming.HasQuestion() {
		base.AlternativeQuestions = append(base.AlternativeQuestions, AlternativeQuestion{
			QuestionID:     incoming.QuestionID,
			QuestionText:   incoming.QuestionText,
			ExpectedAnswer: incoming.ExpectedAnswer,
		})
		stats.AlternativesAdded++
	}
	if len(incoming.AlternativeQuestions) > 0 {
		base.AlternativeQuestions = append(base.AlternativeQuestions, incoming.AlternativeQuestions...)
		stats.AlternativesAdded += len(incoming.AlternativeQuestions)
	}
}
