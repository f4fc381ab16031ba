package lora

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"lora-canvas-server/modules/common/result"
)

type Service struct {
	uploader Uploader
	tempDir  string
}

// NewService - tempDir가 비어 있으면 OS 기본 임시 디렉터리 사용
func NewService(uploader Uploader, tempDir string) *Service {
	return &Service{
		uploader: uploader,
		tempDir:  tempDir,
	}
}

// ValidateFilename - 파일명 검증 (빈 이름, 확장자)
func ValidateFilename(filename string) *result.Error {
	if filename == "" {
		return &result.Error{Kind: result.KindClient, Message: "No file selected"}
	}
	if !strings.HasSuffix(filename, RequiredExtension) {
		return &result.Error{Kind: result.KindClient, Message: "File must be a " + RequiredExtension + " file"}
	}
	return nil
}

// Upload - payload를 요청 전용 임시 디렉터리에 저장 후 provider에 업로드.
// 임시 파일은 성공/실패와 관계없이 삭제됨
func (s *Service) Upload(ctx context.Context, filename string, payload io.Reader) result.Result[UploadResponse] {
	if verr := ValidateFilename(filename); verr != nil {
		return result.Result[UploadResponse]{Err: verr}
	}

	dir, err := os.MkdirTemp(s.tempDir, "lora-upload-*")
	if err != nil {
		return result.ProviderError[UploadResponse](fmt.Errorf("failed to create temp dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("⚠️ [Lora] Failed to remove temp dir")
		}
	}()

	tempPath := filepath.Join(dir, filepath.Base(filename))
	if err := writeFile(tempPath, payload); err != nil {
		return result.ProviderError[UploadResponse](err)
	}

	log.Info().Str("filename", filename).Msg("📤 [Lora] Uploading adapter to fal")

	loraURL, err := s.uploader.UploadFile(ctx, tempPath)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("❌ [Lora] Upload failed")
		return result.ProviderError[UploadResponse](err)
	}

	log.Info().Str("filename", filename).Str("url", loraURL).Msg("✅ [Lora] Upload complete")
	return result.OK(UploadResponse{
		Success:  true,
		LoraURL:  loraURL,
		Filename: filename,
	})
}

func writeFile(path string, payload io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(f, payload); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	return f.Close()
}
