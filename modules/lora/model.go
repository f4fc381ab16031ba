package lora

import "context"

// RequiredExtension - 업로드 가능한 LoRA 가중치 확장자
const RequiredExtension = ".safetensors"

// FormField - multipart 파일 필드 이름
const FormField = "file"

// Uploader - 파일 호스팅 provider (fal storage)
type Uploader interface {
	UploadFile(ctx context.Context, path string) (string, error)
}

// UploadResponse - 업로드 성공 응답
type UploadResponse struct {
	Success  bool   `json:"success"`
	LoraURL  string `json:"lora_url"`
	Filename string `json:"filename"`
}
