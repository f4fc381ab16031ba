package prompt

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

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

// RegisterRoutes - 프롬프트 생성 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate-prompt", h.HandleGeneratePrompt).Methods("POST")
}

// HandleGeneratePrompt - POST /generate-prompt
// 본문이 없으면 스타일 미지정으로 처리
func (h *Handler) HandleGeneratePrompt(w http.ResponseWriter, r *http.Request) {
	if !h.service.Available() {
		result.Write(w, result.Unavailable[GeneratePromptResponse](UnavailableMessage))
		return
	}

	var req GeneratePromptRequest
	if err := request.DecodeObject(w, r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
		result.Write(w, result.ClientError[GeneratePromptResponse](decodeErrorMessage(err)))
		return
	}

	result.Write(w, h.service.GeneratePrompt(r.Context(), &req))
}

// decodeErrorMessage - style 타입 불일치는 잘못된 스타일로 취급
func decodeErrorMessage(err error) string {
	var fieldErr *request.FieldTypeError
	switch {
	case errors.Is(err, request.ErrTooLarge):
		return "Request body too large"
	case errors.As(err, &fieldErr) && fieldErr.Field == "style":
		return InvalidStyleMessage()
	default:
		return "Invalid JSON body"
	}
}
