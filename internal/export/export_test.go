package export

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/certquiz/internal/content"
	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
	"github.com/abhisek/certquiz/internal/quiz"
)

func exportTree() *content.Tree {
	tree := content.NewTree()
	exam := tree.EnsureExam("AZ-900")
	exam.Name = "Azure Fundamentals"
	skill := exam.EnsureSkillArea("Describe cloud concepts")
	models := skill.EnsureSubtopic("Cloud models")
	models.AppendDetail(&content.Detail{Description: "Define cloud computing"})
	models.AppendDetail(content.NewLegacyDetail("Describe the shared responsibility model"))
	skill.EnsureSubtopic("Benefits").AppendDetail(&content.Detail{Description: "Describe high availability"})
	return tree
}

func TestBuildFlashcards(t *testing.T) {
	cards, err := BuildFlashcards(exportTree(), "AZ-900")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("cards = %d, want overview + 2 topic cards", len(cards))
	}
	if !strings.Contains(cards[0].Answer, "Cloud models") || !strings.Contains(cards[0].Answer, "Benefits") {
		t.Errorf("overview card = %+v", cards[0])
	}
	// Legacy bare-string details appear like any other.
	if !strings.Contains(cards[1].Answer, "shared responsibility") {
		t.Errorf("topic card missing legacy detail: %+v", cards[1])
	}
}

func TestWriteFlashcardsCSVShape(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cards := []Flashcard{{Question: "Q, with comma?", Answer: `A "quoted" answer`}}
	path, err := WriteFlashcards(dir, "AZ-900", cards)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{
		{"Question", "Answer"},
		{"Q, with comma?", `A "quoted" answer`},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
}

func TestExtractConcepts(t *testing.T) {
	questions := []quiz.Question{
		{SkillArea: "Security", Question: "Explain the difference between authentication and authorization?"},
		{SkillArea: "Security", Question: "What is defense in depth?"},
		{SkillArea: "Networking", Question: "Does a VNet span regions?"},
		{SkillArea: "Networking", Question: "Given a hub and spoke topology with peered virtual networks, how does traffic flow?"},
	}
	got := ExtractConcepts(questions)
	want := []string{
		"Given a hub and spoke",
		"Networking",
		"Security",
		"a VNet span regions",
		"between authentication and authorization",
		"defense in depth",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("concepts = %#v, want %#v", got, want)
	}
}

func TestExtractConceptsDeduplicates(t *testing.T) {
	questions := []quiz.Question{
		{SkillArea: "Security", Question: "What is MFA?"},
		{SkillArea: "security", Question: "What is mfa?"},
	}
	got := ExtractConcepts(questions)
	if len(got) != 2 {
		t.Fatalf("concepts = %v, want case-insensitive dedupe to 2", got)
	}
}

func TestImagerGeneratesAndDownloads(t *testing.T) {
	png := []byte("\x89PNG fake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(png)
	}))
	defer srv.Close()

	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("A diagram of layered defenses")})
	media := &llm.MockMedia{ImageURL: srv.URL + "/img.png"}

	imager := NewImager(mock, media, dir)
	imager.httpClient = srv.Client()

	results, err := imager.Generate(context.Background(), []string{"Defense in depth"}, "professional")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results = %+v", results)
	}
	data, err := os.ReadFile(results[0].Path)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if string(data) != string(png) {
		t.Error("downloaded bytes differ")
	}
	if !strings.HasSuffix(results[0].Path, "defense-in-depth.png") {
		t.Errorf("path = %s", results[0].Path)
	}

	if len(media.ImageCalls) != 1 {
		t.Fatalf("image calls = %d", len(media.ImageCalls))
	}
	call := media.ImageCalls[0]
	if call.Style != "natural" || !strings.Contains(call.Prompt, "technical diagram") {
		t.Errorf("style mapping not applied: %+v", call)
	}
}

func TestImagerRejectsUnknownStyle(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	imager := NewImager(llm.NewMockProvider(), &llm.MockMedia{}, dir)
	_, err = imager.Generate(context.Background(), []string{"x"}, "vaporwave")
	if err == nil || !strings.Contains(err.Error(), "vaporwave") {
		t.Fatalf("err = %v", err)
	}
}

func TestImagerIsolatesPerConceptFailures(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// First concept: description call fails. Second: succeeds but the
	// download 404s. Both failures are recorded, neither aborts the run.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: []byte("desc")},
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	imager := NewImager(mock, &llm.MockMedia{ImageURL: srv.URL}, dir)
	imager.httpClient = srv.Client()

	results, err := imager.Generate(context.Background(), []string{"a", "b"}, "fun")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(results) != 2 || results[0].Err == nil || results[1].Err == nil {
		t.Fatalf("results = %+v, want two isolated failures", results)
	}
}

func TestPodcasterWritesAudio(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Welcome back. Today we recap defense in depth.")})
	media := &llm.MockMedia{Audio: []byte("ID3 fake mp3")}

	path, err := NewPodcaster(mock, media, dir).Generate(context.Background(), "AZ-900", []string{"Defense in depth", "Zero trust"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasSuffix(path, "AZ-900_concepts_podcast.mp3") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "ID3 fake mp3" {
		t.Fatalf("audio = %q, err = %v", data, err)
	}

	if len(media.SpeechCalls) != 1 || media.SpeechCalls[0].Voice != DefaultVoice {
		t.Fatalf("speech calls = %+v", media.SpeechCalls)
	}
	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Zero trust") {
		t.Errorf("script prompt missing concepts:\n%s", prompt)
	}
}

func TestPodcasterNoConceptsIsActionable(t *testing.T) {
	dir, err := files.Resolve(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewPodcaster(llm.NewMockProvider(), &llm.MockMedia{}, dir).Generate(context.Background(), "AZ-900", nil)
	if err == nil || !strings.Contains(err.Error(), "certquiz feedback") {
		t.Fatalf("err = %v", err)
	}
}
