package config

import (
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL   string `env:"SUPABASE_URL,required"`
	SupabaseKey   string `env:"SUPABASE_KEY,required"`
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
}

// Load читает .env, если он есть, и собирает конфигурацию из окружения
func Load() (*Config, error) {
	// В продакшене .env отсутствует, переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
