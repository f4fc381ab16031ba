package fal

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const (
	DefaultQueueURL     = "https://queue.fal.run"
	DefaultStorageURL   = "https://rest.alpha.fal.ai"
	DefaultPollInterval = 500 * time.Millisecond
)

// Options - Client 생성 옵션
type Options struct {
	Key          string
	QueueURL     string
	StorageURL   string
	PollInterval time.Duration
}

// Client - fal queue / storage REST 클라이언트
type Client struct {
	http         *resty.Client
	authHeader   string
	queueURL     string
	storageURL   string
	pollInterval time.Duration
}

// NewClient - fal 클라이언트 생성. 키가 비어 있어도 생성되며 호출 시 provider가 거부함
func NewClient(opts Options) *Client {
	if opts.QueueURL == "" {
		opts.QueueURL = DefaultQueueURL
	}
	if opts.StorageURL == "" {
		opts.StorageURL = DefaultStorageURL
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	httpClient := resty.New()
	httpClient.AddResponseMiddleware(func(_ *resty.Client, r *resty.Response) error {
		if r.Request == nil || r.Request.RawRequest == nil {
			return nil
		}
		log.Debug().
			Str("method", r.Request.RawRequest.Method).
			Str("path", r.Request.RawRequest.URL.Path).
			Int("status", r.StatusCode()).
			Msg("[Fal] HTTP request")
		return nil
	})

	return &Client{
		http:         httpClient,
		authHeader:   "Key " + opts.Key,
		queueURL:     strings.TrimSuffix(opts.QueueURL, "/"),
		storageURL:   strings.TrimSuffix(opts.StorageURL, "/"),
		pollInterval: opts.PollInterval,
	}
}

// Submit - queue에 작업 등록
func (c *Client) Submit(ctx context.Context, appID string, arguments interface{}) (*QueueHandle, error) {
	endpoint := fmt.Sprintf("%s/%s", c.queueURL, strings.Trim(appID, "/"))

	resp, err := c.authed(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(arguments).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fal submit failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Bytes())}
	}

	var handle QueueHandle
	if err := json.Unmarshal(resp.Bytes(), &handle); err != nil {
		return nil, fmt.Errorf("failed to parse fal submit response: %w", err)
	}
	if handle.RequestID == "" {
		return nil, fmt.Errorf("fal submit response has no request_id")
	}
	handle.AppID = appID

	log.Info().
		Str("app", appID).
		Str("request_id", handle.RequestID).
		Msg("📨 [Fal] Job submitted")
	return &handle, nil
}

// Status - 작업 상태 조회
func (c *Client) Status(ctx context.Context, h *QueueHandle) (*QueueStatus, error) {
	resp, err := c.authed(ctx).
		SetQueryParam("logs", "0").
		Get(c.statusURL(h))
	if err != nil {
		return nil, fmt.Errorf("fal status request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Bytes())}
	}

	var status QueueStatus
	if err := json.Unmarshal(resp.Bytes(), &status); err != nil {
		return nil, fmt.Errorf("failed to parse fal status response: %w", err)
	}
	return &status, nil
}

// Result - 완료된 작업의 결과 JSON을 그대로 반환
func (c *Client) Result(ctx context.Context, h *QueueHandle) (json.RawMessage, error) {
	resp, err := c.authed(ctx).
		Get(c.responseURL(h))
	if err != nil {
		return nil, fmt.Errorf("fal result request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Bytes())}
	}

	body := resp.Bytes()
	if !json.Valid(body) {
		return nil, fmt.Errorf("fal result is not valid JSON")
	}
	return json.RawMessage(body), nil
}

// Wait - COMPLETED가 될 때까지 polling 후 결과 반환
func (c *Client) Wait(ctx context.Context, h *QueueHandle) (json.RawMessage, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.Status(ctx, h)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case StatusCompleted:
			log.Info().Str("request_id", h.RequestID).Msg("✅ [Fal] Job completed")
			if status.ResponseURL != "" && h.ResponseURL == "" {
				h.ResponseURL = status.ResponseURL
			}
			return c.Result(ctx, h)
		case StatusInQueue, StatusInProgress:
			log.Debug().
				Str("request_id", h.RequestID).
				Str("status", status.Status).
				Msg("⏳ [Fal] Waiting for job")
		default:
			return nil, fmt.Errorf("unexpected fal job status %q", status.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Run - Submit 후 Wait (블로킹)
func (c *Client) Run(ctx context.Context, appID string, arguments interface{}) (json.RawMessage, error) {
	handle, err := c.Submit(ctx, appID, arguments)
	if err != nil {
		return nil, err
	}
	return c.Wait(ctx, handle)
}

// Upload - 바이트를 fal storage에 올리고 공개 URL 반환
func (c *Client) Upload(ctx context.Context, data []byte, contentType, fileName string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.authed(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("storage_type", "fal-cdn-v3").
		SetBody(initiateUploadRequest{ContentType: contentType, FileName: fileName}).
		Post(c.storageURL + "/storage/upload/initiate")
	if err != nil {
		return "", fmt.Errorf("fal upload initiate failed: %w", err)
	}
	if resp.IsError() {
		return "", &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Bytes())}
	}

	var initiated initiateUploadResponse
	if err := json.Unmarshal(resp.Bytes(), &initiated); err != nil {
		return "", fmt.Errorf("failed to parse fal upload initiate response: %w", err)
	}
	if initiated.UploadURL == "" || initiated.FileURL == "" {
		return "", fmt.Errorf("fal upload initiate response is missing upload_url or file_url")
	}

	// 서명된 upload_url 에는 fal 키를 보내지 않음
	putResp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put(initiated.UploadURL)
	if err != nil {
		return "", fmt.Errorf("fal upload failed: %w", err)
	}
	if putResp.IsError() {
		return "", &APIError{StatusCode: putResp.StatusCode(), Body: string(putResp.Bytes())}
	}

	log.Info().
		Str("file", fileName).
		Int("bytes", len(data)).
		Str("url", initiated.FileURL).
		Msg("📤 [Fal] File uploaded")
	return initiated.FileURL, nil
}

// UploadFile - 로컬 파일을 fal storage에 업로드
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	return c.Upload(ctx, data, contentType, filepath.Base(path))
}

// authed - fal API 키가 붙은 요청
func (c *Client) authed(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.authHeader)
}

func (c *Client) statusURL(h *QueueHandle) string {
	if h.StatusURL != "" {
		return h.StatusURL
	}
	return fmt.Sprintf("%s/requests/%s/status", c.appBase(h.AppID), h.RequestID)
}

func (c *Client) responseURL(h *QueueHandle) string {
	if h.ResponseURL != "" {
		return h.ResponseURL
	}
	return fmt.Sprintf("%s/requests/%s", c.appBase(h.AppID), h.RequestID)
}

// appBase - "owner/app/sub/path" 형태의 app id는 owner/app 까지만 queue 경로에 사용
func (c *Client) appBase(appID string) string {
	parts := strings.Split(strings.Trim(appID, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return c.queueURL + "/" + strings.Join(parts, "/")
}
