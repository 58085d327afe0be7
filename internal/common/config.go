package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig
	LLM      LLMConfig
	Ledger   LedgerConfig
	Store    StoreConfig
	Pipeline PipelineConfig
	OCR      OCRConfig
}

// TelegramConfig holds transport configuration.
type TelegramConfig struct {
	BotToken    string
	PollTimeout time.Duration
	DownloadDir string
	CallTimeout time.Duration
}

// LLMConfig holds language-model configuration.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float32
	ExtractTimeout  time.Duration
	FollowupTimeout time.Duration
	RegionFocus     string
}

// LedgerConfig selects and locates the append-only sink.
type LedgerConfig struct {
	Driver string // "xlsx" | "sqlite"
	Path   string
}

// StoreConfig selects the conversation context store backend.
type StoreConfig struct {
	Backend   string // "memory" | "redis"
	RedisAddr string
}

// PipelineConfig holds reconciliation deployment options.
type PipelineConfig struct {
	VerticalProfile string // "none" | "real-estate"
}

// OCRConfig holds OCR engine configuration.
type OCRConfig struct {
	Language string
	PSM      int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			PollTimeout: getEnvAsDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),
			DownloadDir: getEnv("TELEGRAM_DOWNLOAD_DIR", os.TempDir()),
			CallTimeout: getEnvAsDuration("TELEGRAM_CALL_TIMEOUT", 45*time.Second),
		},
		LLM: LLMConfig{
			APIKey:          getEnv("GROQ_API_KEY", ""),
			BaseURL:         getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:           getEnv("GROQ_MODEL", "llama3-70b-8192"),
			Temperature:     getEnvAsFloat32("GROQ_TEMPERATURE", 0.2),
			ExtractTimeout:  getEnvAsDuration("EXTRACT_TIMEOUT", 20*time.Second),
			FollowupTimeout: getEnvAsDuration("FOLLOWUP_TIMEOUT", 15*time.Second),
			RegionFocus:     getEnv("REGION_FOCUS", "Focus on India."),
		},
		Ledger: LedgerConfig{
			Driver: getEnv("LEDGER_DRIVER", "xlsx"),
			Path:   getEnv("LEDGER_PATH", "./cards.xlsx"),
		},
		Store: StoreConfig{
			Backend:   getEnv("CONTEXT_STORE", "memory"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Pipeline: PipelineConfig{
			VerticalProfile: getEnv("VERTICAL_PROFILE", "none"),
		},
		OCR: OCRConfig{
			Language: getEnv("TESSERACT_LANG", "eng"),
			PSM:      getEnvAsInt("TESSERACT_PSM", 0),
		},
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return NewAppError("CONFIG_ERROR", "TELEGRAM_BOT_TOKEN is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GROQ_API_KEY is required", ErrInvalidInput)
	}
	if c.Ledger.Driver != "xlsx" && c.Ledger.Driver != "sqlite" {
		return NewAppError("CONFIG_ERROR", "LEDGER_DRIVER must be xlsx or sqlite", ErrInvalidInput)
	}
	if c.Store.Backend != "memory" && c.Store.Backend != "redis" {
		return NewAppError("CONFIG_ERROR", "CONTEXT_STORE must be memory or redis", ErrInvalidInput)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
