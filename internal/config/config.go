package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	ApiKeySecret       string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Email != ""
}

type APIKeys struct {
	OpenAI       string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider   string // "openai", "openai-assistant", "gemini", "ollama"
	LLMModel      string
	OpenAIBaseURL string
	GeminiBaseURL string
	OllamaBaseURL string
	Temperature   float64
	MaxTokens     int
}

type ChatConfig struct {
	ConsultingMinTurns int
	HistoryLimit       int
	TrialWindow        time.Duration // 0 disables the gate
}

type CatalogConfig struct {
	CacheTTL    time.Duration
	EventsTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			ApiKeySecret:       getEnv("API_KEY_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Workflow Hub"),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1000),
		},
		Chat: ChatConfig{
			ConsultingMinTurns: getEnvAsInt("CHAT_CONSULTING_MIN_TURNS", 3),
			HistoryLimit:       getEnvAsInt("CHAT_HISTORY_LIMIT", 20),
			TrialWindow:        getEnvAsDuration("CHAT_TRIAL_WINDOW", 10*time.Minute),
		},
		Catalog: CatalogConfig{
			CacheTTL:    getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
			EventsTopic: getEnv("CATALOG_EVENTS_TOPIC", "CATALOG_IMPORTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "10m").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
