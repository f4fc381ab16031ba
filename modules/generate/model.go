package generate

import (
	"context"
	"encoding/json"
)

// SimpleImageSize - generate-simple 에서 고정으로 사용하는 이미지 크기
const SimpleImageSize = "square"

// 클라이언트 오류 메시지
const (
	NoJSONMessage   = "No JSON data provided"
	TooLargeMessage = "Request body too large"
)

// Inference - 이미지 생성 provider (submit 후 완료까지 대기)
type Inference interface {
	Run(ctx context.Context, appID string, arguments interface{}) (json.RawMessage, error)
}

// LoraWeight - 스타일 어댑터 참조 (URL + scale, 범위 제한 없음)
type LoraWeight struct {
	Path  string   `json:"path"`
	Scale *float64 `json:"scale,omitempty"`
}

// GenerateRequest - POST /generate 요청
type GenerateRequest struct {
	Prompt   string       `json:"prompt" validate:"required"`
	Loras    []LoraWeight `json:"loras,omitempty"`
	SyncMode *bool        `json:"sync_mode,omitempty"`
}

// SimpleGenerateRequest - POST /generate-simple 요청
type SimpleGenerateRequest struct {
	Prompt    string   `json:"prompt" validate:"required"`
	LoraURL   *string  `json:"lora_url,omitempty"`
	LoraScale *float64 `json:"lora_scale,omitempty"`
}

// Arguments - provider에 전달하는 인자 묶음
type Arguments struct {
	Prompt    string       `json:"prompt"`
	SyncMode  *bool        `json:"sync_mode,omitempty"`
	ImageSize string       `json:"image_size,omitempty"`
	Loras     []LoraWeight `json:"loras,omitempty"`
}

// GenerateResponse - provider 결과를 그대로 전달
type GenerateResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}
