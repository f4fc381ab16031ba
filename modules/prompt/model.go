package prompt

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// chat completion 고정 파라미터
const (
	DefaultModel = openai.GPT4o
	MaxTokens    = 500
	Temperature  = 0.8
)

// ChatCompleter - chat completion provider (*openai.Client 가 만족)
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GeneratePromptRequest - POST /generate-prompt 요청
type GeneratePromptRequest struct {
	Style string `json:"style,omitempty" validate:"omitempty,oneof=zsh-oil zsh-watercolor"`
}

// GeneratePromptResponse - 생성된 프롬프트
type GeneratePromptResponse struct {
	Success   bool   `json:"success"`
	Prompt    string `json:"prompt"`
	StyleUsed string `json:"style_used"`
}
