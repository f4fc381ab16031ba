package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Port               string   `env:"PORT" envDefault:"8000"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TempDir            string   `env:"TEMP_DIR"`
	MaxUploadMB        int64    `env:"MAX_UPLOAD_MB" envDefault:"512"`

	// fal
	FalKey          string        `env:"FAL_KEY"`
	FalQueueURL     string        `env:"FAL_QUEUE_URL" envDefault:"https://queue.fal.run"`
	FalStorageURL   string        `env:"FAL_STORAGE_URL" envDefault:"https://rest.alpha.fal.ai"`
	FalModel        string        `env:"FAL_MODEL" envDefault:"fal-ai/flux-lora"`
	FalPollInterval time.Duration `env:"FAL_POLL_INTERVAL" envDefault:"500ms"`

	// OpenAI
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️  .env file not found, using environment variables")
	}

	return Parse()
}

// Parse - 현재 프로세스 환경변수만으로 Config 생성 (.env 미사용)
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate - 형식 검증. 키 누락은 경고만 (Warnings 참고)
func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.FalPollInterval <= 0 {
		return fmt.Errorf("FAL_POLL_INTERVAL must be positive, got %s", c.FalPollInterval)
	}
	return nil
}

// Warnings - 누락된 provider 키에 대한 경고 메시지
func (c *Config) Warnings() []string {
	var warnings []string
	if c.FalKey == "" {
		warnings = append(warnings, "FAL_KEY environment variable not set! Please set your fal API key in a .env file or environment variable.")
	}
	if c.OpenAIAPIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY environment variable not set! Please set your OpenAI API key in a .env file or environment variable.")
	}
	return warnings
}

// MaxUploadBytes - multipart 업로드 최대 크기
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Addr - 서버 listen 주소
func (c *Config) Addr() string {
	return ":" + c.Port
}
