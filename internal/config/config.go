package config

import (
	"os"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// Identity tokens
	JWTSecret             string
	AccessTokenTTLMinutes string // minutes
	RefreshTokenTTLDays   string // days
	RefreshJWTSecret      string
	// Seeded admin
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	// Media transport (capability tokens)
	MediaAPIKey           string
	MediaAPISecret        string
	MediaServerURL        string
	MediaTokenTTLMinutes  string // minutes
	RTCRequireAuth        string // "true" => hardened mode
	// Presence
	PresenceTTLSeconds string // freshness window
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "tutorlive_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:             getenv("JWT_SECRET", "supersecret_change_me"),
		AccessTokenTTLMinutes: getenv("ACCESS_TOKEN_TTL_MINUTES", "15"),
		RefreshTokenTTLDays:   getenv("REFRESH_TOKEN_TTL_DAYS", "30"),
		RefreshJWTSecret:      getenv("REFRESH_JWT_SECRET", getenv("JWT_SECRET", "supersecret_change_me")),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminFullName: getenv("ADMIN_FULL_NAME", "Administrator"),

		MediaAPIKey:          getenv("MEDIA_API_KEY", ""),
		MediaAPISecret:       getenv("MEDIA_API_SECRET", ""),
		MediaServerURL:       getenv("MEDIA_SERVER_URL", ""),
		MediaTokenTTLMinutes: getenv("MEDIA_TOKEN_TTL_MINUTES", "120"),
		RTCRequireAuth:       getenv("RTC_REQUIRE_AUTH", "false"),

		PresenceTTLSeconds: getenv("PRESENCE_TTL_SECONDS", "30"),
	}
}

func (c *Config) HardenedRTC() bool {
	return c.RTCRequireAuth == "true" || c.RTCRequireAuth == "1"
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
