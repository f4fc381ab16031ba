package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"lora-canvas-server/modules/common/config"
	"lora-canvas-server/modules/common/fal"
	"lora-canvas-server/modules/common/logger"
	"lora-canvas-server/modules/generate"
	"lora-canvas-server/modules/health"
	"lora-canvas-server/modules/lora"
	"lora-canvas-server/modules/prompt"
)

// Dependencies - 라우터에 주입되는 provider 클라이언트
type Dependencies struct {
	Uploader  lora.Uploader
	Inference generate.Inference
	Chat      prompt.ChatCompleter
}

// routeRegistrar - RegisterRoutes 를 가진 모듈 핸들러
type routeRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

// NewRouter - 모든 모듈 라우트 + CORS + 접근 로그
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := mux.NewRouter()

	handlers := []routeRegistrar{
		health.NewHandler(),
		lora.NewHandler(lora.NewService(deps.Uploader, cfg.TempDir), cfg.MaxUploadBytes()),
		generate.NewHandler(generate.NewService(deps.Inference, cfg.FalModel)),
		prompt.NewHandler(prompt.NewService(deps.Chat, cfg.OpenAIModel)),
	}
	for _, h := range handlers {
		h.RegisterRoutes(r)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return withAccessLog(log.Logger, c.Handler(r))
}

// withAccessLog - 요청 ID 부여 및 요청별 로그
func withAccessLog(base zerolog.Logger, next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("[HTTP] request")
	})
	return hlog.NewHandler(base)(requestID(access(next)))
}

// requestID - X-Request-Id 헤더 유지 또는 생성
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		l := hlog.FromRequest(r).With().Str("req_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	if _, err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to configure logger")
	}

	for _, warning := range cfg.Warnings() {
		log.Warn().Msg("⚠️  " + warning)
	}

	falClient := fal.NewClient(fal.Options{
		Key:          cfg.FalKey,
		QueueURL:     cfg.FalQueueURL,
		StorageURL:   cfg.FalStorageURL,
		PollInterval: cfg.FalPollInterval,
	})

	handler := NewRouter(cfg, Dependencies{
		Uploader:  falClient,
		Inference: falClient,
		Chat:      prompt.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("🚀 Fal inference server starting on port %s", cfg.Port)
		log.Info().Msgf("❤️  Health check: http://localhost:%s/", cfg.Port)
		log.Info().Msgf("🎨 Model: %s", cfg.FalModel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
