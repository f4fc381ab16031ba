package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"lora-canvas-server/modules/common/result"
)

// Response - 헬스 체크 응답
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes - "/" 와 "/health" 모두 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.HandleHealth).Methods("GET")
	r.HandleFunc("/health", h.HandleHealth).Methods("GET")
}

// HandleHealth - 항상 healthy
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	result.WriteJSON(w, http.StatusOK, Response{
		Status:  "healthy",
		Message: "Fal inference server is running",
	})
}
