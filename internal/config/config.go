package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env     string
	Port    string
	BaseURL string
}

type DBCfg struct{ DSN string }

type RedisCfg struct{ Addr string }

type AuthCfg struct {
	JWTSecret       string
	TokenTTL        time.Duration
	RefreshTTL      time.Duration
	BcryptCost      int
	CookieName      string
	RateLimitPerMin int
}

type UploadCfg struct {
	Dir        string
	MaxImageMB int64
	MaxDocMB   int64
	MaxVideoMB int64
}

type MailCfg struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type CORSCfg struct {
	AllowedOrigins []string
}

type Cfg struct {
	App    AppCfg
	DB     DBCfg
	Redis  RedisCfg
	Auth   AuthCfg
	Upload UploadCfg
	Mail   MailCfg
	CORS   CORSCfg
}

// Load builds the process configuration from the environment (plus an
// optional .env file) and fails fast on anything the server cannot run
// without. The resulting struct is handed to services by injection; no
// package reads configuration globally.
func Load() Cfg {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("REFRESH_TTL_HOURS", 168)
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("AUTH_COOKIE_NAME", "token")
	viper.SetDefault("RATE_LIMIT_PER_MIN", 30)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("UPLOAD_MAX_IMAGE_MB", 5)
	viper.SetDefault("UPLOAD_MAX_DOC_MB", 10)
	viper.SetDefault("UPLOAD_MAX_VIDEO_MB", 50)
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	cfg := Cfg{
		App: AppCfg{
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("APP_PORT"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		Auth: AuthCfg{
			JWTSecret:       viper.GetString("JWT_SECRET"),
			TokenTTL:        time.Duration(viper.GetInt("TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTTL:      time.Duration(viper.GetInt("REFRESH_TTL_HOURS")) * time.Hour,
			BcryptCost:      viper.GetInt("BCRYPT_COST"),
			CookieName:      viper.GetString("AUTH_COOKIE_NAME"),
			RateLimitPerMin: viper.GetInt("RATE_LIMIT_PER_MIN"),
		},
		Upload: UploadCfg{
			Dir:        viper.GetString("UPLOAD_DIR"),
			MaxImageMB: viper.GetInt64("UPLOAD_MAX_IMAGE_MB"),
			MaxDocMB:   viper.GetInt64("UPLOAD_MAX_DOC_MB"),
			MaxVideoMB: viper.GetInt64("UPLOAD_MAX_VIDEO_MB"),
		},
		Mail: MailCfg{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetString("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		CORS: CORSCfg{
			AllowedOrigins: splitCSV(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters")
	}

	return cfg
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
