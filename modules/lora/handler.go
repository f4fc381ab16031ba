package lora

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"lora-canvas-server/modules/common/result"
)

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes - 업로드 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/upload-lora", h.HandleUpload).Methods("POST")
}

// HandleUpload - POST /upload-lora
// multipart "file" 필드의 .safetensors 파일을 fal storage에 업로드
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			result.Write(w, result.ClientError[UploadResponse]("File too large"))
			return
		}
		log.Debug().Err(err).Msg("[Lora] Request is not a multipart form")
		result.Write(w, result.ClientError[UploadResponse]("No file provided"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(FormField)
	if err != nil {
		// filename="" 인 part는 multipart 파서가 일반 값으로 취급
		if _, ok := r.MultipartForm.Value[FormField]; ok {
			result.Write(w, result.ClientError[UploadResponse]("No file selected"))
			return
		}
		result.Write(w, result.ClientError[UploadResponse]("No file provided"))
		return
	}
	defer file.Close()

	result.Write(w, h.service.Upload(r.Context(), header.Filename, file))
}
