package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8000"`
		Origin string `env:"ORIGIN" envDefault:"*"`
	}

	Database struct {
		URL string `env:"DATABASE_URL" envDefault:""`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		// TTL for cached profile reads
		ProfileTTL time.Duration `env:"REDIS_PROFILE_TTL" envDefault:"5m"`
	}

	Gemini struct {
		// An empty key does not block startup; analysis calls fail until
		// one is configured.
		APIKey  string        `env:"GEMINI_API_KEY" envDefault:""`
		Model   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
		BaseURL string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
		Timeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"60s"`
	}

	Image struct {
		BaseURL string `env:"IMAGE_BASE_URL" envDefault:"https://image.pollinations.ai/prompt"`
		Width   int    `env:"IMAGE_WIDTH" envDefault:"1024"`
		Height  int    `env:"IMAGE_HEIGHT" envDefault:"576"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Ignore a missing .env file; in production the variables
		// are set directly in the environment.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
