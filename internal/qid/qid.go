// Package qid builds stable question identifiers of the form
// {exam}_{skill abbreviation}_{8 hex chars}. The hash covers the full
// exam/skill/topic/description/question tuple, so regenerating the same
// question yields the same identifier while any wording change yields a
// new one.
package qid

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// New returns the identifier for a question at the given position in the
// content tree. All inputs are normalized to lowercase with surrounding
// whitespace trimmed before hashing, so cosmetic differences don't fork IDs.
func New(exam, skillArea, topic, description, question string) string {
	parts := []string{
		normalize(exam),
		normalize(skillArea),
		normalize(topic),
		normalize(description),
		normalize(question),
	}
	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return normalize(exam) + "_" + Abbrev(skillArea) + "_" + hex.EncodeToString(sum[:])[:8]
}

// Abbrev derives a short skill-area tag: the first three words after
// dropping the leading "describe" verb common to exam outlines, joined by
// underscores. "Describe cloud service types" → "cloud_service_types".
func Abbrev(skillArea string) string {
	words := strings.Fields(normalize(skillArea))
	if len(words) > 1 && words[0] == "describe" {
		words = words[1:]
	}
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "general"
	}
	return strings.Join(words, "_")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
