package config

import (
	"time"

	"github.com/Effortree/backend/utils"
)

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "8000"),
		ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// LLMConfig configures the Gemini collaborator. Timeout bounds every
// external call; on expiry the endpoints fall back to fixed text.
type LLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func LoadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey:  utils.GetEnvAsString("GOOGLE_API_KEY", ""),
		Model:   utils.GetEnvAsString("GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout: utils.GetEnvAsDuration("LLM_TIMEOUT", 15*time.Second),
	}
}

// RedisConfig configures the optional interpretation cache. An empty
// URL disables caching entirely.
type RedisConfig struct {
	URL string
	TTL time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL: utils.GetEnvAsString("REDIS_URL", ""),
		TTL: utils.GetEnvAsDuration("INTERPRETATION_CACHE_TTL", 10*time.Minute),
	}
}

// StorageConfig configures the S3-compatible bucket holding gift
// images. An empty endpoint disables uploads; gifts then save without
// images.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Endpoint:  utils.GetEnvAsString("STORAGE_ENDPOINT", ""),
		AccessKey: utils.GetEnvAsString("STORAGE_ACCESS_KEY", ""),
		SecretKey: utils.GetEnvAsString("STORAGE_SECRET_KEY", ""),
		Bucket:    utils.GetEnvAsString("STORAGE_BUCKET", "effortree-bucket"),
		PublicURL: utils.GetEnvAsString("STORAGE_PUBLIC_URL", ""),
		UseSSL:    utils.GetEnvAsBool("STORAGE_USE_SSL", true),
	}
}
