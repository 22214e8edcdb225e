package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nattycheck/api/internal/domain/analysis"
	"github.com/nattycheck/api/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Client is the provider-backed analyzer. One request carries all submitted
// views plus the schema prompt; the response is requested as a strict JSON
// object and validated before it is returned.
type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a client. An empty apiKey is allowed; Analyze then fails
// with analysis.ErrNotConfigured instead of crashing startup.
func NewClient(apiKey, model string) *Client {
	c := &Client{Model: model}
	if apiKey != "" {
		c.Client = openai.NewClient(apiKey)
	}
	return c
}

func (c *Client) Analyze(ctx context.Context, photos analysis.PhotoSet) (*analysis.Report, error) {
	if c.Client == nil {
		return nil, analysis.ErrNotConfigured
	}

	model := c.Model
	if model == "" {
		model = openai.GPT4o
	}

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt.GetUserPrompt()},
	}
	for _, view := range []analysis.Photo{photos.Front, photos.Side, photos.Back} {
		if view.Empty() {
			continue
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    imageURL(view),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", analysis.ErrProvider)
	}

	return analysis.ParseReport([]byte(resp.Choices[0].Message.Content))
}

// imageURL passes URL references through and inlines raw bytes as a data URL.
func imageURL(p analysis.Photo) string {
	if p.URL != "" {
		return p.URL
	}
	contentType := p.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
