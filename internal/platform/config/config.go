package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	Debug         bool
	EnableDBCheck bool

	JWTSecret            string
	JWTIssuer            string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	// AudienceHeader is the request header that selects the principal table
	// ("manage" or "customer") for the current request.
	AudienceHeader string

	LogDir           string
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "pharmago-backend")
	viper.SetDefault("ACCESS_TOKEN_LIFETIME", "5m")
	viper.SetDefault("REFRESH_TOKEN_LIFETIME", "720h")
	viper.SetDefault("AUDIENCE_HEADER", "X-Http-System")
	viper.SetDefault("LOG_DIR", "logs")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.Debug = viper.GetBool("DEBUG")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	accessLifetimeStr := viper.GetString("ACCESS_TOKEN_LIFETIME")
	accessLifetime, err := time.ParseDuration(accessLifetimeStr)
	if err != nil {
		accessLifetime = 5 * time.Minute
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_LIFETIME ('%s'). Defaulting to %s.\n", accessLifetimeStr, accessLifetime)
	}
	cfg.AccessTokenLifetime = accessLifetime

	refreshLifetimeStr := viper.GetString("REFRESH_TOKEN_LIFETIME")
	refreshLifetime, err := time.ParseDuration(refreshLifetimeStr)
	if err != nil {
		refreshLifetime = 30 * 24 * time.Hour
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_LIFETIME ('%s'). Defaulting to %s.\n", refreshLifetimeStr, refreshLifetime)
	}
	cfg.RefreshTokenLifetime = refreshLifetime

	cfg.AudienceHeader = viper.GetString("AUDIENCE_HEADER")
	cfg.LogDir = viper.GetString("LOG_DIR")

	origins := viper.GetString("CORS_ALLOW_ORIGINS")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	return cfg, nil
}
