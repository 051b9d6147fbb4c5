// Package generate turns one base prompt into a batch of images: it derives
// prompt variations, fans the variations out to the upstream model, and writes
// every returned image to the output store.
package generate

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Elizabeth1979/nano-banana/internal/infra"
	"github.com/Elizabeth1979/nano-banana/internal/providers/openrouter"
	"github.com/Elizabeth1979/nano-banana/internal/storage"
)

const workerMaxTokens = 1000

// Task is one unit of image generation work. EditingImage carries the
// base64-encoded PNG to modify, or is empty for plain generation.
type Task struct {
	Index        int
	Prompt       string
	EditingImage string
}

// Result is the outcome of a single task. Exactly one of Filename and Error is
// meaningful depending on Success.
type Result struct {
	Index    int    `json:"index"`
	Success  bool   `json:"success"`
	Prompt   string `json:"prompt"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

type chatClient interface {
	Chat(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error)
}

// WorkerOptions configures a Worker.
type WorkerOptions struct {
	Client chatClient
	Model  string
	Store  *storage.FileStore
	Logger *infra.Logger
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// Worker issues one generation or edit call per task and persists the decoded
// image. Failures never escape as errors: they are folded into the Result so
// sibling tasks keep running.
type Worker struct {
	client chatClient
	model  string
	store  *storage.FileStore
	logger *infra.Logger
	now    func() time.Time
}

// NewWorker wires a Worker with its chat client, image model, and store.
func NewWorker(opts WorkerOptions) *Worker {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Worker{client: opts.Client, model: opts.Model, store: opts.Store, logger: logger, now: now}
}

// Run executes one task to completion and reports its outcome.
func (w *Worker) Run(ctx context.Context, task Task) Result {
	resp, err := w.client.Chat(ctx, openrouter.ChatRequest{
		Model:      w.model,
		Messages:   buildMessages(task),
		MaxTokens:  workerMaxTokens,
		Modalities: []string{"image", "text"},
	})
	if err != nil {
		return w.failure(task, err.Error())
	}
	if len(resp.Choices) == 0 {
		return w.failure(task, "no choices in response")
	}
	message := resp.Choices[0].Message
	if len(message.Images) == 0 {
		return w.failure(task, "no image data in response")
	}

	data, err := decodeDataURI(message.Images[0].ImageURL.URL)
	if err != nil {
		return w.failure(task, err.Error())
	}

	key := w.filename(task)
	if _, err := w.store.Write(ctx, key, data); err != nil {
		return w.failure(task, err.Error())
	}

	w.logger.Info().Int("index", task.Index).Str("filename", key).Msg("generate: image saved")
	return Result{Index: task.Index, Success: true, Prompt: task.Prompt, Filename: key}
}

func (w *Worker) failure(task Task, reason string) Result {
	w.logger.Warn().Int("index", task.Index).Str("error", reason).Msg("generate: task failed")
	return Result{Index: task.Index, Success: false, Prompt: task.Prompt, Error: reason}
}

// filename combines the task index with a second-resolution timestamp. The
// index keeps concurrent workers of the same batch from colliding inside one
// second.
func (w *Worker) filename(task Task) string {
	prefix := "image"
	if task.EditingImage != "" {
		prefix = "edited"
	}
	return fmt.Sprintf("%s_%d_%s.png", prefix, task.Index, w.now().Format("20060102_150405"))
}

func buildMessages(task Task) []openrouter.Message {
	if task.EditingImage != "" {
		instruction := fmt.Sprintf("Edit this image: %s", task.Prompt)
		return openrouter.TextWithImage(instruction, "data:image/png;base64,"+task.EditingImage)
	}
	return openrouter.Text(fmt.Sprintf("Generate an image of: %s", task.Prompt))
}

// decodeDataURI extracts and decodes the base64 payload of an inline image
// reference of the form data:image/<fmt>;base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, fmt.Errorf("unexpected image url format")
	}
	_, payload, found := strings.Cut(uri, "base64,")
	if !found {
		return nil, fmt.Errorf("image url is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}
