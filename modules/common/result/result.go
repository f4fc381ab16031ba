package result

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Kind - 에러 분류 (클라이언트 4xx / provider 5xx)
type Kind int

const (
	KindClient Kind = iota
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// Error - 태그된 operation 에러
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status - Kind에 대응하는 HTTP 상태 코드
func (e *Error) Status() int {
	if e.Kind == KindClient {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Result - operation 결과: Value 또는 Err 중 하나
type Result[T any] struct {
	Value T
	Err   *Error
}

func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// ClientError - 요청 필드 누락/잘못된 값
func ClientError[T any](message string) Result[T] {
	return Result[T]{Err: &Error{Kind: KindClient, Message: message}}
}

// ProviderError - 외부 provider 호출 실패, 메시지는 원본 에러 그대로
func ProviderError[T any](err error) Result[T] {
	return Result[T]{Err: &Error{Kind: KindProvider, Message: err.Error(), Err: err}}
}

// Unavailable - 초기화되지 않은 의존성
func Unavailable[T any](message string) Result[T] {
	return Result[T]{Err: &Error{Kind: KindProvider, Message: message}}
}

func (r Result[T]) IsOK() bool {
	return r.Err == nil
}

// ErrorResponse - 공통 에러 envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON - JSON 응답 작성
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("❌ [Result] Failed to encode response")
	}
}

// Write - Result를 HTTP 응답으로 변환
func Write[T any](w http.ResponseWriter, r Result[T]) {
	if r.Err != nil {
		WriteJSON(w, r.Err.Status(), ErrorResponse{Error: r.Err.Message})
		return
	}
	WriteJSON(w, http.StatusOK, r.Value)
}
