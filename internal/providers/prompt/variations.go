// Package prompt derives creative rewrites of a base image prompt through a
// text model so a batch of generations covers more visual ground than a single
// phrasing would.
package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Elizabeth1979/nano-banana/internal/infra"
	"github.com/Elizabeth1979/nano-banana/internal/providers/openrouter"
)

const variationMaxTokens = 300

type chatClient interface {
	Chat(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error)
}

// Options configures a variation Generator.
type Options struct {
	Client chatClient
	Model  string
	Logger *infra.Logger
}

// Generator rewrites a base prompt into several creative variations. It never
// surfaces upstream errors: every failure mode degrades to copies of the base
// prompt so a batch can still run.
type Generator struct {
	client chatClient
	model  string
	logger *infra.Logger
}

// NewGenerator wires a Generator with its chat client and text model.
func NewGenerator(opts Options) *Generator {
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Generator{client: opts.Client, model: opts.Model, logger: logger}
}

// Variations returns exactly count prompts derived from basePrompt. Shortfalls
// are padded with basePrompt, overflow is truncated, and any request failure
// yields count copies of basePrompt.
func (g *Generator) Variations(ctx context.Context, basePrompt string, count int) []string {
	if count <= 0 {
		return nil
	}
	if g == nil || g.client == nil {
		return duplicate(basePrompt, count)
	}

	instruction := buildInstruction(basePrompt, count)
	resp, err := g.client.Chat(ctx, openrouter.ChatRequest{
		Model:     g.model,
		Messages:  openrouter.Text(instruction),
		MaxTokens: variationMaxTokens,
	})
	if err != nil {
		g.logger.Warn().Err(err).Msg("prompt: variation request failed, reusing base prompt")
		return duplicate(basePrompt, count)
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn().Msg("prompt: variation response had no choices, reusing base prompt")
		return duplicate(basePrompt, count)
	}

	variations := splitLines(resp.Choices[0].Message.Content)
	for len(variations) < count {
		variations = append(variations, basePrompt)
	}
	return variations[:count]
}

func buildInstruction(basePrompt string, count int) string {
	return fmt.Sprintf(`Create %d creative variations of this image prompt: %q

Keep the core concept but vary:
- Visual style and mood
- Specific details and elements
- Artistic approach or medium
- Lighting and atmosphere

Return only the %d variations, one per line, without numbering or extra text.`, count, basePrompt, count)
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func duplicate(prompt string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = prompt
	}
	return out
}
