package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Elizabeth1979/nano-banana/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("openrouter: api key is required")

// DefaultBaseURL is the chat completions endpoint used when none is configured.
const DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// Options configures the OpenRouter client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the OpenRouter chat completions API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// ImageURL carries an image reference, either a remote URL or a data URI.
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart is one element of a structured multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// Message is a single chat message. Content is either a plain string or a
// []ContentPart for multimodal payloads; both marshal to the wire shapes the
// API documents.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ChatRequest is the request body for a chat completion call.
type ChatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	MaxTokens  int       `json:"max_tokens"`
	Modalities []string  `json:"modalities,omitempty"`
}

// ResponseImage is one inline image returned alongside the text content.
type ResponseImage struct {
	ImageURL ImageURL `json:"image_url"`
}

// ResponseMessage is the assistant message of a completed choice.
type ResponseMessage struct {
	Content string          `json:"content"`
	Images  []ResponseImage `json:"images,omitempty"`
}

// Choice wraps a single completion candidate.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ChatResponse is the decoded chat completion response.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Text builds a single-message conversation from plain text.
func Text(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}

// TextWithImage builds a single two-part message carrying an instruction and
// an inline image reference.
func TextWithImage(text, imageURL string) []Message {
	return []Message{{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		},
	}}
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Chat performs one authenticated chat completion call. Any transport error or
// non-success status is returned to the caller; no retries are attempted here.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("openrouter: model is required")
	}
	if len(req.Messages) == 0 {
		return nil, errors.New("openrouter: at least one message is required")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openrouter: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openrouter: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openrouter: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			return nil, fmt.Errorf("openrouter: %s (status %d)", detail.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("openrouter: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded ChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("openrouter: decode response: %w", err)
	}

	c.logger.Debug().
		Str("model", req.Model).
		Int("choices", len(decoded.Choices)).
		Msg("openrouter: chat completion")
	return &decoded, nil
}
