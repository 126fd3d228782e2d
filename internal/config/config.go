package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string
	RedisAddr   string

	JWTIssuer           string
	JWTSecret           string
	AccessTokenTTLHours int

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CORSOrigin string

	ShippingFlatRate      string
	FreeShippingThreshold string
	MultibancoEntity      string
	CardRedirectBase      string

	UploadDir string
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		RedisAddr:   get("REDIS_ADDR", "localhost:6379"),

		JWTIssuer:           get("JWT_ISSUER", "befit"),
		JWTSecret:           get("JWT_SECRET", ""),
		AccessTokenTTLHours: getInt("ACCESS_TOKEN_TTL_HOURS", 24),

		SMTPHost: get("SMTP_HOST", ""),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: get("SMTP_USER", ""),
		SMTPPass: get("SMTP_PASS", ""),
		SMTPFrom: get("SMTP_FROM", ""),

		CORSOrigin: get("CORS_ORIGIN", "http://localhost:5173"),

		ShippingFlatRate:      get("SHIPPING_FLAT_RATE", "4.99"),
		FreeShippingThreshold: get("FREE_SHIPPING_THRESHOLD", "50.00"),
		MultibancoEntity:      get("MULTIBANCO_ENTITY", "11249"),
		CardRedirectBase:      get("CARD_REDIRECT_BASE", "https://pay.befit.pt/cc"),

		UploadDir: get("UPLOAD_DIR", "./uploads"),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
