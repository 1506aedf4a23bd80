package service

import (
	"context"
	"fmt"

	openaiacl "github.com/cloudwego/eino-ext/libs/acl/openai"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/prnvtripathi/tract-us/config"
)

// NewAnalysisModel builds the chat model used for contract analysis. The
// endpoint speaks the OpenAI chat-completions protocol, so the same wiring
// covers Groq, OpenAI and compatible gateways. JSON response format is
// forced so the analysis prompt gets a parseable object back.
func NewAnalysisModel(ctx context.Context, cfg *config.LLMConfig) (model.BaseChatModel, error) {
	temperature := float32(cfg.Temperature)
	maxTokens := cfg.MaxTokens

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		ResponseFormat: &openaiacl.ChatCompletionResponseFormat{
			Type: openaiacl.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis model: %w", err)
	}

	return chatModel, nil
}
