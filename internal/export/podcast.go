package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
)

// DefaultVoice is the text-to-speech voice used for podcast exports.
const DefaultVoice = "alloy"

// Podcaster turns a concept list into a short recap audio episode.
type Podcaster struct {
	provider llm.Provider
	media    llm.MediaProvider
	dir      files.Dir
}

// NewPodcaster builds a podcast exporter.
func NewPodcaster(provider llm.Provider, media llm.MediaProvider, dir files.Dir) *Podcaster {
	return &Podcaster{provider: provider, media: media, dir: dir}
}

const podcastScriptPrompt = `You write scripts for a short solo study podcast. Cover every listed concept in a conversational, encouraging tone, one or two sentences each, with a brief intro and outro. Write plain prose only: the text is fed directly to a text-to-speech engine, so no headings, stage directions, or markdown.`

// Generate writes one script over all concepts, synthesizes it, and saves
// the audio under the podcasts directory. Returns the audio file path.
func (p *Podcaster) Generate(ctx context.Context, examCode string, concepts []string) (string, error) {
	if len(concepts) == 0 {
		return "", fmt.Errorf("no concepts to cover; run `certquiz feedback --exam %s` first", examCode)
	}

	prompt := fmt.Sprintf(
		"Write a recap episode for the %s exam covering these concepts:\n- %s",
		examCode, strings.Join(concepts, "\n- "),
	)
	resp, err := p.provider.Generate(llm.WithPurpose(ctx, "podcast"), llm.Request{
		System:    podcastScriptPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens: 2048,
	})
	if err != nil {
		return "", fmt.Errorf("write podcast script: %w", err)
	}
	script := strings.TrimSpace(string(resp.Content))
	if script == "" {
		return "", fmt.Errorf("model returned an empty script")
	}

	audio, err := p.media.GenerateSpeech(ctx, llm.SpeechRequest{Text: script, Voice: DefaultVoice})
	if err != nil {
		return "", fmt.Errorf("synthesize podcast: %w", err)
	}

	podcastsDir, err := p.dir.PodcastsDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(podcastsDir, fmt.Sprintf("%s_concepts_podcast.mp3", examCode))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("save podcast: %w", err)
	}
	return path, nil
}
