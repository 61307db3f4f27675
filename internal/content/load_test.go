package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyTree(t *testing.T) {
	warnings := captureWarnings(t)
	tree := Load(filepath.Join(t.TempDir(), "absent.json"))
	if tree.Len() != 0 {
		t.Fatalf("exams = %d, want 0", tree.Len())
	}
	if len(*warnings) != 1 {
		t.Fatalf("warnings = %v, want one", *warnings)
	}
}

func TestLoadCorruptFileReturnsEmptyTree(t *testing.T) {
	warnings := captureWarnings(t)
	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	tree := Load(path)
	if tree.Len() != 0 {
		t.Fatalf("exams = %d, want 0", tree.Len())
	}
	if len(*warnings) != 1 {
		t.Fatalf("warnings = %v, want one", *warnings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	if err := Save(path, baseTree()); err != nil {
		t.Fatalf("save: %v", err)
	}
	tree := Load(path)
	if tree.Exam("AZ-900") == nil {
		t.Fatal("exam lost in round trip")
	}
	d := tree.Exam("AZ-900").FindSkillArea("Describe cloud concepts").
		FindSubtopic("Cloud models").FindDetail("Describe the shared responsibility model")
	if d == nil || !d.IsLegacy() {
		t.Errorf("legacy detail lost in round trip: %+v", d)
	}
}
