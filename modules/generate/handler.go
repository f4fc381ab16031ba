package generate

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"lora-canvas-server/modules/common/request"
	"lora-canvas-server/modules/common/result"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes - 생성 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate", h.HandleGenerate).Methods("POST")
	r.HandleFunc("/generate-simple", h.HandleGenerateSimple).Methods("POST")
}

// HandleGenerate - POST /generate
// prompt + loras 목록으로 fal-ai/flux-lora 실행 후 결과 그대로 반환
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := request.DecodeObject(w, r, &req); err != nil {
		log.Debug().Err(err).Msg("[Generate] Rejecting body")
		result.Write(w, result.ClientError[GenerateResponse](decodeErrorMessage(err)))
		return
	}

	result.Write(w, h.service.Generate(r.Context(), &req))
}

// HandleGenerateSimple - POST /generate-simple
// 단일 lora_url/lora_scale 버전
func (h *Handler) HandleGenerateSimple(w http.ResponseWriter, r *http.Request) {
	var req SimpleGenerateRequest
	if err := request.DecodeObject(w, r, &req); err != nil {
		log.Debug().Err(err).Msg("[Generate] Rejecting simple body")
		result.Write(w, result.ClientError[GenerateResponse](decodeErrorMessage(err)))
		return
	}

	result.Write(w, h.service.GenerateSimple(r.Context(), &req))
}

// decodeErrorMessage - 본문 디코딩 실패 시 클라이언트 메시지
func decodeErrorMessage(err error) string {
	var fieldErr *request.FieldTypeError
	switch {
	case errors.Is(err, request.ErrTooLarge):
		return TooLargeMessage
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid value for %s", fieldErr.Field)
	default:
		return NoJSONMessage
	}
}
