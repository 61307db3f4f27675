package llm

import "context"

// MediaProvider is the abstraction over the external AI image/audio
// collaborator. Only the OpenAI backend implements it; other providers
// leave media features unavailable.
type MediaProvider interface {
	// GenerateImage renders an image from a prompt and returns its URL.
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)

	// GenerateSpeech synthesizes speech from text and returns the audio bytes.
	GenerateSpeech(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// ImageRequest describes one image generation call.
type ImageRequest struct {
	Prompt  string
	Style   string // "vivid" or "natural"
	Size    string // e.g. "1024x1024"
	Quality string // e.g. "standard", "hd"
}

// SpeechRequest describes one text-to-speech call.
type SpeechRequest struct {
	Text  string
	Voice string // e.g. "alloy"
}

var validImageSizes = map[string]bool{
	"1024x1024": true,
	"1792x1024": true,
	"1024x1792": true,
	"256x256":   true,
	"512x512":   true,
}

var validImageQualities = map[string]bool{
	"standard": true,
	"hd":       true,
}

var validImageStyles = map[string]bool{
	"vivid":   true,
	"natural": true,
}

// normalize fills defaults and rejects unsupported parameter values.
func (r *ImageRequest) normalize() error {
	if r.Style == "" {
		r.Style = "vivid"
	}
	if r.Size == "" {
		r.Size = "1024x1024"
	}
	if r.Quality == "" {
		r.Quality = "standard"
	}
	if !validImageStyles[r.Style] {
		return &ErrInvalidResponse{Err: errInvalidParam("style", r.Style)}
	}
	if !validImageSizes[r.Size] {
		return &ErrInvalidResponse{Err: errInvalidParam("size", r.Size)}
	}
	if !validImageQualities[r.Quality] {
		return &ErrInvalidResponse{Err: errInvalidParam("quality", r.Quality)}
	}
	return nil
}

type paramError struct {
	name  string
	value string
}

func errInvalidParam(name, value string) error {
	return &paramError{name: name, value: value}
}

func (e *paramError) Error() string {
	return "invalid image " + e.name + ": " + e.value
}
