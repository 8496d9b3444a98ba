package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn of the prompt submitted to the AI backend.
type Message struct {
	Role    string
	Content string
}

// Gateway issues a single synchronous call to a generative-AI backend and
// returns its plain-text output. Implementations perform no retries; any
// transport failure is returned to the caller, which treats it as a fallback
// trigger.
type Gateway interface {
	Configured() bool
	Call(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

const (
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	geminiCallTimeout     = 30 * time.Second

	// Returned when the response body parses but carries no generated text.
	noOutputReply = "Sorry, I couldn't process that request."
)

// GeminiGateway implements Gateway against the Gemini generateContent REST
// API. It is stateless aside from its configuration.
type GeminiGateway struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewGeminiGateway constructs a gateway for the given endpoint and key.
// An empty endpoint selects the default Gemini endpoint; an empty key leaves
// the gateway unconfigured, which callers observe via Configured.
func NewGeminiGateway(endpoint, apiKey string) *GeminiGateway {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &GeminiGateway{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: geminiCallTimeout,
		},
	}
}

// Configured reports whether the gateway has an endpoint and API key.
func (g *GeminiGateway) Configured() bool {
	return g.endpoint != "" && g.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Call flattens the messages into a single prompt and posts it to the
// configured endpoint with the API key as a query parameter.
func (g *GeminiGateway) Call(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("gemini gateway not configured")
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: flattenMessages(messages)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := g.endpoint + "?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini response read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini response parse: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return noOutputReply, nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// flattenMessages renders the message sequence as "System: ..." and
// "User: ..." blocks separated by blank lines.
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			b.WriteString("System: " + m.Content + "\n\n")
		case RoleUser:
			b.WriteString("User: " + m.Content + "\n\n")
		}
	}
	return strings.TrimSpace(b.String())
}

var _ Gateway = (*GeminiGateway)(nil)
