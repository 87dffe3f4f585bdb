package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/studysnap/aicore/internal/provider/cloud"
	"github.com/studysnap/aicore/internal/provider/local"
)

// Config represents the service configuration.
type Config struct {
	Server   ServerConfig
	CORS     CORSConfig
	Cloud    cloud.Config
	Local    local.Config
	Cache    CacheConfig
	Defaults DefaultsConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"180"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// CacheConfig contains completion cache settings. An empty address disables
// caching.
type CacheConfig struct {
	RedisAddr  string `env:"REDIS_ADDR"`
	TTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"3600"`
}

// DefaultsConfig seeds the settings store.
type DefaultsConfig struct {
	Preference  string `env:"PROVIDER_PREFERENCE" envDefault:"automatic"`
	APIKey      string `env:"CLOUD_API_KEY"`
	TextModel   string `env:"TEXT_MODEL"          envDefault:"openai/gpt-oss-20b"`
	VisionModel string `env:"VISION_MODEL"        envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server   *ServerConfig
	CORS     *CORSConfig
	Cloud    *cloud.Config
	Local    *local.Config
	Cache    *CacheConfig
	Defaults *DefaultsConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Server:   &cfg.Server,
		CORS:     &cfg.CORS,
		Cloud:    &cfg.Cloud,
		Local:    &cfg.Local,
		Cache:    &cfg.Cache,
		Defaults: &cfg.Defaults,
	}
}
