package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{APIKey: "  "}); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestChatSendsAuthorizedRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := client.Chat(context.Background(), ChatRequest{
		Model:      "test/model",
		Messages:   Text("hi"),
		MaxTokens:  100,
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("Authorization header mismatch: %q", gotAuth)
	}
	if gotBody["model"] != "test/model" {
		t.Fatalf("model mismatch: %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(100) {
		t.Fatalf("max_tokens mismatch: %v", gotBody["max_tokens"])
	}
	mods, _ := gotBody["modalities"].([]any)
	if len(mods) != 2 {
		t.Fatalf("modalities mismatch: %v", gotBody["modalities"])
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "hello" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestChatDecodesInlineImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"","images":[{"image_url":{"url":"data:image/png;base64,aGk="}}]}}]}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := client.Chat(context.Background(), ChatRequest{Model: "m", Messages: Text("hi"), MaxTokens: 10})
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	images := resp.Choices[0].Message.Images
	if len(images) != 1 || images[0].ImageURL.URL != "data:image/png;base64,aGk=" {
		t.Fatalf("unexpected images: %#v", images)
	}
}

func TestChatSurfacesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"rate limited"}}`))
	}))
	defer server.Close()

	client, err := NewClient(Options{APIKey: "sk-test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = client.Chat(context.Background(), ChatRequest{Model: "m", Messages: Text("hi"), MaxTokens: 10})
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error should carry upstream message, got %v", err)
	}
}

func TestTextWithImageBuildsTwoPartMessage(t *testing.T) {
	messages := TextWithImage("edit it", "data:image/png;base64,aGk=")
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %d", len(messages))
	}
	parts, ok := messages[0].Content.([]ContentPart)
	if !ok || len(parts) != 2 {
		t.Fatalf("unexpected content: %#v", messages[0].Content)
	}
	if parts[0].Type != "text" || parts[0].Text != "edit it" {
		t.Fatalf("unexpected text part: %#v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil || parts[1].ImageURL.URL != "data:image/png;base64,aGk=" {
		t.Fatalf("unexpected image part: %#v", parts[1])
	}
}
