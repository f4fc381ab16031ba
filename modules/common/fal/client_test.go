package fal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(Options{
		Key:          "test-key",
		QueueURL:     srv.URL,
		StorageURL:   srv.URL,
		PollInterval: 5 * time.Millisecond,
	})
}

func TestRunSubmitsPollsAndFetchesResult(t *testing.T) {
	var statusCalls int32
	var submitted map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc("/fal-ai/flux-lora", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"request_id":"req-1"}`)
	})
	mux.HandleFunc("/fal-ai/flux-lora/requests/req-1/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&statusCalls, 1) < 3 {
			io.WriteString(w, `{"status":"IN_PROGRESS"}`)
			return
		}
		io.WriteString(w, `{"status":"COMPLETED"}`)
	})
	mux.HandleFunc("/fal-ai/flux-lora/requests/req-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"images":[{"url":"https://cdn/x.png"}],"seed":42}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv)
	out, err := client.Run(context.Background(), "fal-ai/flux-lora", map[string]interface{}{"prompt": "a cat"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"images":[{"url":"https://cdn/x.png"}],"seed":42}`, string(out))
	assert.Equal(t, "a cat", submitted["prompt"])
	assert.EqualValues(t, 3, atomic.LoadInt32(&statusCalls))
}

func TestRunUsesReturnedURLs(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/fal-ai/flux-lora", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"request_id":   "abc",
			"status_url":   srvURL + "/custom/status",
			"response_url": srvURL + "/custom/response",
		})
	})
	mux.HandleFunc("/custom/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"COMPLETED"}`)
	})
	mux.HandleFunc("/custom/response", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":true}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	out, err := newTestClient(t, srv).Run(context.Background(), "fal-ai/flux-lora", map[string]string{"prompt": "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
}

func TestSubmitErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Invalid key"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Run(context.Background(), "fal-ai/flux-lora", map[string]string{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestResultErrorAfterCompletion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fal-ai/flux-lora", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"request_id":"r"}`)
	})
	mux.HandleFunc("/fal-ai/flux-lora/requests/r/status", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"COMPLETED"}`)
	})
	mux.HandleFunc("/fal-ai/flux-lora/requests/r", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":[{"msg":"field required"}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(t, srv).Run(context.Background(), "fal-ai/flux-lora", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field required")
	assert.Contains(t, err.Error(), "422")
}

func TestWaitUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"EXPLODED"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Wait(context.Background(), &QueueHandle{AppID: "fal-ai/flux-lora", RequestID: "x"})
	assert.ErrorContains(t, err, "EXPLODED")
}

func TestWaitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"IN_QUEUE","queue_position":3}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, srv).Wait(ctx, &QueueHandle{AppID: "fal-ai/flux-lora", RequestID: "x"})
	require.Error(t, err)
}

func TestUploadFile(t *testing.T) {
	var initiated initiateUploadRequest
	var uploaded []byte
	var srvURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/storage/upload/initiate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fal-cdn-v3", r.URL.Query().Get("storage_type"))
		assert.Equal(t, "Key test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&initiated))
		json.NewEncoder(w).Encode(initiateUploadResponse{
			UploadURL: srvURL + "/put/style.safetensors",
			FileURL:   "https://v3.fal.media/files/style.safetensors",
		})
	})
	mux.HandleFunc("/put/style.safetensors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"), "signed upload URL must not receive the fal key")
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		uploaded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	path := filepath.Join(t.TempDir(), "style.safetensors")
	require.NoError(t, os.WriteFile(path, []byte("weights"), 0o600))

	url, err := newTestClient(t, srv).UploadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://v3.fal.media/files/style.safetensors", url)
	assert.Equal(t, "style.safetensors", initiated.FileName)
	assert.Equal(t, "application/octet-stream", initiated.ContentType)
	assert.Equal(t, []byte("weights"), uploaded)
}

func TestUploadInitiateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"detail":"forbidden"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Upload(context.Background(), []byte("x"), "", "a.safetensors")
	assert.ErrorContains(t, err, "forbidden")
}

func TestUploadFileMissing(t *testing.T) {
	client := NewClient(Options{Key: "k"})
	_, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.safetensors"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestAppBase(t *testing.T) {
	c := NewClient(Options{QueueURL: "https://queue.example/"})
	assert.Equal(t, "https://queue.example/fal-ai/flux-lora", c.appBase("fal-ai/flux-lora"))
	assert.Equal(t, "https://queue.example/fal-ai/flux", c.appBase("fal-ai/flux/dev"))
}
