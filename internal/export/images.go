package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/llm"
)

// ImageStyle maps a user-facing style name onto a prompt modifier and the
// generation backend's rendering style.
type ImageStyle struct {
	PromptModifier string
	RenderStyle    string // "vivid" or "natural"
}

// ImageStyles are the style names the images command accepts.
var ImageStyles = map[string]ImageStyle{
	"fun": {
		PromptModifier: "playful cartoon illustration, bright colors, memorable visual metaphor",
		RenderStyle:    "vivid",
	},
	"professional": {
		PromptModifier: "clean technical diagram, minimal labels, muted palette",
		RenderStyle:    "natural",
	},
	"photorealistic": {
		PromptModifier: "photorealistic scene illustrating the concept",
		RenderStyle:    "natural",
	},
}

// ImageResult records one concept image export.
type ImageResult struct {
	Concept string
	Path    string
	Err     error
}

// Imager generates one study image per concept.
type Imager struct {
	provider llm.Provider
	media    llm.MediaProvider
	dir      files.Dir

	// httpClient is swapped in tests.
	httpClient *http.Client
}

// NewImager builds an image exporter.
func NewImager(provider llm.Provider, media llm.MediaProvider, dir files.Dir) *Imager {
	return &Imager{provider: provider, media: media, dir: dir, httpClient: http.DefaultClient}
}

const imageDescPrompt = `You write prompts for an image generator. Given a certification exam concept, describe a single clear image that would help a student remember it. Reply with the image description only, no preamble.`

// Generate produces one image per concept, sequentially: a text call to
// write the image description, the image entry point for the render, then
// a download into the images directory. Failures are isolated per concept.
func (g *Imager) Generate(ctx context.Context, concepts []string, styleName string) ([]ImageResult, error) {
	style, ok := ImageStyles[styleName]
	if !ok {
		names := make([]string, 0, len(ImageStyles))
		for n := range ImageStyles {
			names = append(names, n)
		}
		return nil, fmt.Errorf("unknown image style %q (have: %s)", styleName, strings.Join(names, ", "))
	}

	imagesDir, err := g.dir.ImagesDir()
	if err != nil {
		return nil, err
	}

	results := make([]ImageResult, 0, len(concepts))
	for _, concept := range concepts {
		path, err := g.generateOne(ctx, imagesDir, concept, style)
		results = append(results, ImageResult{Concept: concept, Path: path, Err: err})
		if ctx.Err() != nil {
			break
		}
	}
	return results, nil
}

func (g *Imager) generateOne(ctx context.Context, imagesDir, concept string, style ImageStyle) (string, error) {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "image-desc"), llm.Request{
		System:    imageDescPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: concept}},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	description := strings.Trim(strings.TrimSpace(string(resp.Content)), `"`)

	url, err := g.media.GenerateImage(ctx, llm.ImageRequest{
		Prompt: fmt.Sprintf("%s. %s", description, style.PromptModifier),
		Style:  style.RenderStyle,
	})
	if err != nil {
		return "", fmt.Errorf("render image: %w", err)
	}

	path := filepath.Join(imagesDir, slug(concept)+".png")
	if err := g.download(ctx, url, path); err != nil {
		return "", err
	}
	return path, nil
}

func (g *Imager) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download image: unexpected status %s", resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

// slug reduces a concept to a safe file name.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "concept"
	}
	return b.String()
}
