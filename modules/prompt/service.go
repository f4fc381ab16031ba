package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"lora-canvas-server/modules/common/logger"
	"lora-canvas-server/modules/common/request"
	"lora-canvas-server/modules/common/result"
)

// UnavailableMessage - chat 클라이언트가 초기화되지 않았을 때
const UnavailableMessage = "OpenAI client not available. Please check your OPENAI_API_KEY."

type Service struct {
	chat  ChatCompleter
	model string
}

// NewService - chat이 nil이면 모든 요청이 500으로 실패
func NewService(chat ChatCompleter, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		chat:  chat,
		model: model,
	}
}

// NewOpenAIClient - 시작 시 한 번 생성하는 chat 클라이언트. 키가 없으면 nil
func NewOpenAIClient(apiKey, baseURL string) ChatCompleter {
	if apiKey == "" {
		log.Warn().Msg("⚠️ [Prompt] OpenAI client not initialized: OPENAI_API_KEY is empty")
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	log.Info().Msg("✅ [Prompt] OpenAI client initialized")
	return openai.NewClientWithConfig(cfg)
}

// Available - chat 클라이언트 존재 여부
func (s *Service) Available() bool {
	return s.chat != nil
}

// InvalidStyleMessage - 허용 스타일 목록을 포함한 에러 메시지
func InvalidStyleMessage() string {
	return "Invalid style. Must be one of: " + strings.Join(Styles, ", ")
}

// GeneratePrompt - 예시 프롬프트를 기반으로 새 프롬프트 생성
func (s *Service) GeneratePrompt(ctx context.Context, req *GeneratePromptRequest) result.Result[GeneratePromptResponse] {
	if !s.Available() {
		return result.Unavailable[GeneratePromptResponse](UnavailableMessage)
	}

	if err := request.Validator().Struct(req); err != nil {
		return result.ClientError[GeneratePromptResponse](InvalidStyleMessage())
	}

	log.Info().Str("style", req.Style).Str("model", s.model).Msg("✍️ [Prompt] Requesting prompt generation")

	resp, err := s.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildInstruction(req.Style)},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		log.Error().Err(err).Msg("❌ [Prompt] Chat completion failed")
		return result.ProviderError[GeneratePromptResponse](err)
	}
	if len(resp.Choices) == 0 {
		return result.ProviderError[GeneratePromptResponse](fmt.Errorf("chat completion returned no choices"))
	}

	generated := strings.TrimSpace(resp.Choices[0].Message.Content)
	styleUsed := req.Style
	if styleUsed == "" {
		styleUsed = RandomStyleMarker
	}

	log.Info().
		Str("style_used", styleUsed).
		Str("prompt", logger.Truncate(generated, 50)).
		Msg("✅ [Prompt] Prompt generated")

	return result.OK(GeneratePromptResponse{
		Success:   true,
		Prompt:    generated,
		StyleUsed: styleUsed,
	})
}
