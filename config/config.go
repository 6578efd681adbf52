package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Configuration
	ServerPort string

	// Database Configuration
	DatabasePath string

	// Cache Configuration (optional, empty address disables Redis)
	RedisAddr       string
	RedisPassword   string
	SummaryCacheTTL time.Duration

	// LLM Configuration (optional, empty key disables digests)
	LLMProvider  string // "openai" or "groq"
	OpenAIKey    string
	GroqKey      string
	LLMBaseURL   string
	SummaryModel string

	// Trend Scoring Configuration
	TrendingThreshold float64
	DecayHalfLife     float64 // hours
	MinTimeDecay      float64
	UpvoteWeight      float64
	TrendingLimit     int

	// Retention Configuration
	DraftRetention     time.Duration
	EventRetention     time.Duration
	AnalyticsRetention time.Duration
	VoteRetention      time.Duration

	// Scheduler Configuration
	TrendSweepInterval time.Duration
	RollupInterval     time.Duration
	SweepInterval      time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	AppConfig = &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DB_PATH", "content.db"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		SummaryCacheTTL:    getEnvDuration("SUMMARY_CACHE_TTL", 5*time.Minute),
		LLMProvider:        getEnv("LLM_PROVIDER", "groq"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		GroqKey:            os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:         getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		SummaryModel:       getEnv("SUMMARY_MODEL", "llama-3.1-8b-instant"),
		TrendingThreshold:  getEnvFloat("TRENDING_THRESHOLD", 1.0),
		DecayHalfLife:      getEnvFloat("DECAY_HALF_LIFE_HOURS", 12.0),
		MinTimeDecay:       getEnvFloat("MIN_TIME_DECAY", 0.1),
		UpvoteWeight:       getEnvFloat("UPVOTE_WEIGHT", 0.1),
		TrendingLimit:      getEnvInt("TRENDING_LIMIT", 10),
		DraftRetention:     getEnvDuration("DRAFT_RETENTION", 7*24*time.Hour),
		EventRetention:     getEnvDuration("EVENT_RETENTION", 30*24*time.Hour),
		AnalyticsRetention: getEnvDuration("ANALYTICS_RETENTION", 90*24*time.Hour),
		VoteRetention:      getEnvDuration("VOTE_RETENTION", 90*24*time.Hour),
		TrendSweepInterval: getEnvDuration("TREND_SWEEP_INTERVAL", time.Hour),
		RollupInterval:     getEnvDuration("ROLLUP_INTERVAL", 24*time.Hour),
		SweepInterval:      getEnvDuration("SWEEP_INTERVAL", 24*time.Hour),
	}

	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
