package generate

import (
	"context"

	"github.com/rs/zerolog/log"

	"lora-canvas-server/modules/common/logger"
	"lora-canvas-server/modules/common/request"
	"lora-canvas-server/modules/common/result"
)

type Service struct {
	inference Inference
	modelID   string
}

func NewService(inference Inference, modelID string) *Service {
	return &Service{
		inference: inference,
		modelID:   modelID,
	}
}

// BuildArguments - /generate 인자 구성. sync_mode 기본값 true, loras는 비어 있지 않을 때만
func BuildArguments(req *GenerateRequest) Arguments {
	syncMode := true
	if req.SyncMode != nil {
		syncMode = *req.SyncMode
	}

	args := Arguments{
		Prompt:   req.Prompt,
		SyncMode: &syncMode,
	}
	if len(req.Loras) > 0 {
		args.Loras = req.Loras
	}
	return args
}

// BuildSimpleArguments - /generate-simple 인자 구성. 이미지 크기 고정, LoRA는 최대 1개
func BuildSimpleArguments(req *SimpleGenerateRequest) Arguments {
	args := Arguments{
		Prompt:    req.Prompt,
		ImageSize: SimpleImageSize,
	}
	if req.LoraURL != nil {
		args.Loras = []LoraWeight{{Path: *req.LoraURL, Scale: req.LoraScale}}
	}
	return args
}

// Generate - POST /generate
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) result.Result[GenerateResponse] {
	if err := request.Validator().Struct(req); err != nil {
		return result.ClientError[GenerateResponse]("Prompt is required")
	}

	args := BuildArguments(req)
	log.Info().
		Str("prompt", logger.Truncate(req.Prompt, 50)).
		Int("loras", len(args.Loras)).
		Bool("sync_mode", *args.SyncMode).
		Msg("🎨 [Generate] Submitting job")

	return s.run(ctx, args)
}

// GenerateSimple - POST /generate-simple
func (s *Service) GenerateSimple(ctx context.Context, req *SimpleGenerateRequest) result.Result[GenerateResponse] {
	if err := request.Validator().Struct(req); err != nil {
		return result.ClientError[GenerateResponse]("Prompt is required")
	}

	args := BuildSimpleArguments(req)
	log.Info().
		Str("prompt", logger.Truncate(req.Prompt, 50)).
		Int("loras", len(args.Loras)).
		Msg("🎨 [Generate] Submitting simple job")

	return s.run(ctx, args)
}

func (s *Service) run(ctx context.Context, args Arguments) result.Result[GenerateResponse] {
	out, err := s.inference.Run(ctx, s.modelID, args)
	if err != nil {
		log.Error().Err(err).Str("model", s.modelID).Msg("❌ [Generate] Inference failed")
		return result.ProviderError[GenerateResponse](err)
	}

	log.Info().Str("model", s.modelID).Msg("✅ [Generate] Inference completed")
	return result.OK(GenerateResponse{
		Success: true,
		Result:  out,
	})
}
