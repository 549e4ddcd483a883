package config

import "time"

// SessionConfig представляет конфигурацию сессий пользователей.
type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl" env:"NOTES_SESSION_TTL" env-default:"24h"`
	CookieName string        `yaml:"cookie_name" env:"NOTES_SESSION_COOKIE_NAME" env-default:"notes_session"`
}
