package fal

import (
	"encoding/json"
	"fmt"
)

// Queue 상태 값
const (
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// QueueHandle - queue submit 응답 (이후 status/result 조회에 사용)
type QueueHandle struct {
	AppID         string `json:"-"`
	RequestID     string `json:"request_id"`
	StatusURL     string `json:"status_url"`
	ResponseURL   string `json:"response_url"`
	QueuePosition *int   `json:"queue_position,omitempty"`
}

// QueueStatus - status 조회 응답
type QueueStatus struct {
	Status        string          `json:"status"`
	QueuePosition *int            `json:"queue_position,omitempty"`
	ResponseURL   string          `json:"response_url,omitempty"`
	Logs          json.RawMessage `json:"logs,omitempty"`
}

// initiateUploadRequest - storage 업로드 시작 요청
type initiateUploadRequest struct {
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name"`
}

// initiateUploadResponse - storage 업로드 시작 응답
type initiateUploadResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
}

// APIError - fal API가 2xx 이외의 상태를 반환한 경우
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	var detail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &detail); err == nil && len(detail.Detail) > 0 {
		var msg string
		if err := json.Unmarshal(detail.Detail, &msg); err == nil {
			return fmt.Sprintf("fal API error (status %d): %s", e.StatusCode, msg)
		}
		return fmt.Sprintf("fal API error (status %d): %s", e.StatusCode, string(detail.Detail))
	}
	return fmt.Sprintf("fal API error (status %d): %s", e.StatusCode, e.Body)
}
