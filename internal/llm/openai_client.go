// [FILE] internal/llm/openai_client.go
// Klien OpenAI untuk meringkas data kualitas udara

package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// SystemPrompt default untuk ringkasan kualitas udara.
const SystemPrompt = "You are an assistant that writes short, factual air quality reports. " +
	"Use only the AQI data provided by the user."

// ======================
// Interface (kontrak umum)
// ======================
type Client interface {
	// Ringkasan naratif (non-stream)
	Summarize(ctx context.Context, system, prompt string) (string, error)

	// Streaming delta token untuk SSE
	SummarizeStream(ctx context.Context, system, prompt string, onDelta func(delta string) error) (string, error)

	// Ambil nama model aktif
	Model() string
}

// ======================
// Implementasi OpenAIClient
// ======================
type OpenAIClient struct {
	api   *openai.Client
	model string
}

// New membuat klien dengan kredensial eksplisit (dipakai saat config.json
// yang memegang API key, bukan environment).
// baseURL dan model boleh kosong -> pakai default.
func New(apiKey, baseURL, model string) (Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("openai api key empty")
	}
	cfg := openai.DefaultConfig(key)
	if b := strings.TrimSpace(baseURL); b != "" {
		cfg.BaseURL = b
	}
	m := strings.TrimSpace(model)
	if m == "" {
		m = "gpt-4o-mini"
	}
	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: m,
	}, nil
}

// NewFromEnv membaca API key dan model dari environment
// - OPENAI_API_KEY (wajib)
// - OPENAI_MODEL (opsional, default gpt-4o-mini)
// - OPENAI_BASE_URL (opsional, untuk proxy/self-hosted endpoint)
func NewFromEnv() (Client, error) {
	return New(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
	)
}

func (c *OpenAIClient) Model() string { return c.model }

// Summarize meminta ringkasan naratif.
func (c *OpenAIClient) Summarize(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// SummarizeStream streaming dengan system + user; delta diteruskan ke onDelta.
func (c *OpenAIClient) SummarizeStream(ctx context.Context, system, prompt string, onDelta func(delta string) error) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		Stream:      true,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai stream init: %w", err)
	}
	defer stream.Close()

	var final strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return final.String(), fmt.Errorf("openai stream recv: %w", err)
		}
		for _, ch := range resp.Choices {
			delta := ch.Delta.Content
			if delta == "" {
				continue
			}
			final.WriteString(delta)
			if onDelta != nil {
				if derr := onDelta(delta); derr != nil {
					return final.String(), derr
				}
			}
		}
	}
	return strings.TrimSpace(final.String()), nil
}
