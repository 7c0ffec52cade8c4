package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers selectable through STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Email providers selectable through EMAIL_PROVIDER.
const (
	EmailSMTP   = "smtp"
	EmailResend = "resend"
	EmailLog    = "log"
)

// TokenConfig is the signing secret and default lifetime of one token kind.
type TokenConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Storage
	StoreDriver               string
	MongoURI                  string
	DBName                    string
	UsersCollection           string
	RefreshTokensCollection   string
	FollowersCollection       string
	DatabaseURL               string
	MigrationsPath            string
	RedisURL                  string
	RefreshTokenPurgeInterval time.Duration

	// Credentials and tokens
	HashPasswordSecret             string
	JWTIssuer                      string
	AccessToken                    TokenConfig
	RefreshToken                   TokenConfig
	EmailVerifyToken               TokenConfig
	ForgotPasswordToken            TokenConfig
	RevokeSessionsOnPasswordChange bool

	// External OAuth Providers
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
	ClientRedirectCallback string
	OAuthTimeout           time.Duration

	// Notifications
	ClientURL           string
	EmailProvider       string
	EmailFrom           string
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	ResendAPIKey        string
	NotificationTimeout time.Duration

	// HTTP surface
	AuthRateLimit      string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

const insecureSecretPrefix = "insecure-default-"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_DRIVER", StoreMongo)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("DB_NAME", "social")
	viper.SetDefault("DB_USERS_COLLECTION", "users")
	viper.SetDefault("DB_REFRESH_TOKENS_COLLECTION", "refresh_tokens")
	viper.SetDefault("DB_FOLLOWERS_COLLECTION", "followers")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REFRESH_TOKEN_PURGE_INTERVAL", "1h")
	viper.SetDefault("HASH_PASSWORD_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "social-media-app")
	viper.SetDefault("ACCESS_TOKEN_EXPIRES_IN", "15m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRES_IN", "2400h")
	viper.SetDefault("EMAIL_VERIFY_TOKEN_EXPIRES_IN", "168h")
	viper.SetDefault("FORGOT_PASSWORD_TOKEN_EXPIRES_IN", "168h")
	viper.SetDefault("REVOKE_SESSIONS_ON_PASSWORD_CHANGE", false)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("CLIENT_REDIRECT_CALLBACK", "")
	viper.SetDefault("OAUTH_TIMEOUT", "10s")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("EMAIL_PROVIDER", EmailLog)
	viper.SetDefault("EMAIL_FROM", "Social <onboarding@resend.dev>")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("NOTIFICATION_TIMEOUT", "10s")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	switch cfg.StoreDriver {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		log.Printf("Warning: Unknown STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreMongo)
		cfg.StoreDriver = StoreMongo
	}
	cfg.MongoURI = viper.GetString("MONGO_URI")
	cfg.DBName = viper.GetString("DB_NAME")
	cfg.UsersCollection = viper.GetString("DB_USERS_COLLECTION")
	cfg.RefreshTokensCollection = viper.GetString("DB_REFRESH_TOKENS_COLLECTION")
	cfg.FollowersCollection = viper.GetString("DB_FOLLOWERS_COLLECTION")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StoreDriver == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RefreshTokenPurgeInterval = loadDuration("REFRESH_TOKEN_PURGE_INTERVAL", time.Hour)

	cfg.HashPasswordSecret = viper.GetString("HASH_PASSWORD_SECRET")
	if cfg.HashPasswordSecret == "" {
		log.Println("Warning: HASH_PASSWORD_SECRET is not set, passwords are hashed with an empty key. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.AccessToken = loadToken("JWT_SECRET_ACCESS_TOKEN", "ACCESS_TOKEN_EXPIRES_IN", 15*time.Minute)
	cfg.RefreshToken = loadToken("JWT_SECRET_REFRESH_TOKEN", "REFRESH_TOKEN_EXPIRES_IN", 100*24*time.Hour)
	cfg.EmailVerifyToken = loadToken("JWT_SECRET_EMAIL_VERIFY_TOKEN", "EMAIL_VERIFY_TOKEN_EXPIRES_IN", 7*24*time.Hour)
	cfg.ForgotPasswordToken = loadToken("JWT_SECRET_FORGOT_PASSWORD_TOKEN", "FORGOT_PASSWORD_TOKEN_EXPIRES_IN", 7*24*time.Hour)
	cfg.RevokeSessionsOnPasswordChange = viper.GetBool("REVOKE_SESSIONS_ON_PASSWORD_CHANGE")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.ClientRedirectCallback = viper.GetString("CLIENT_REDIRECT_CALLBACK")
	cfg.OAuthTimeout = loadDuration("OAUTH_TIMEOUT", 10*time.Second)
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or GOOGLE_REDIRECT_URL not set. Google OAuth will not function.")
	}

	cfg.ClientURL = strings.TrimRight(viper.GetString("CLIENT_URL"), "/")
	cfg.EmailProvider = strings.ToLower(viper.GetString("EMAIL_PROVIDER"))
	cfg.EmailFrom = viper.GetString("EMAIL_FROM")
	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	cfg.NotificationTimeout = loadDuration("NOTIFICATION_TIMEOUT", 10*time.Second)
	if cfg.EmailProvider == EmailResend && cfg.ResendAPIKey == "" {
		log.Println("Warning: EMAIL_PROVIDER is resend but RESEND_API_KEY is not set.")
	}

	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// loadDuration parses a Go duration ("15m", "168h"), falling back to def.
func loadDuration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func loadToken(secretKey, expiryKey string, def time.Duration) TokenConfig {
	secret := viper.GetString(secretKey)
	if secret == "" {
		secret = insecureSecretPrefix + strings.ToLower(secretKey)
		log.Printf("Warning: %s is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.\n", secretKey)
	}
	return TokenConfig{
		Secret:    secret,
		ExpiresIn: loadDuration(expiryKey, def),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
