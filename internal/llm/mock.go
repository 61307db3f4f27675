package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockMedia is a deterministic MediaProvider for testing the export paths.
type MockMedia struct {
	mu        sync.Mutex
	ImageURL  string
	Audio     []byte
	ImageErr  error
	SpeechErr error

	ImageCalls  []ImageRequest
	SpeechCalls []SpeechRequest
}

// GenerateImage returns the canned URL.
func (m *MockMedia) GenerateImage(_ context.Context, req ImageRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImageCalls = append(m.ImageCalls, req)
	if m.ImageErr != nil {
		return "", m.ImageErr
	}
	return m.ImageURL, nil
}

// GenerateSpeech returns the canned audio bytes.
func (m *MockMedia) GenerateSpeech(_ context.Context, req SpeechRequest) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SpeechCalls = append(m.SpeechCalls, req)
	if m.SpeechErr != nil {
		return nil, m.SpeechErr
	}
	return m.Audio, nil
}
