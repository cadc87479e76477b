package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the API server.
type Config struct {
	Port            string
	LogLevel        string
	StorageDriver   string // "mongo" or "memory"
	MongoURI        string
	MongoDB         string
	MongoUseTx      bool
	JWTSecret       string
	TokenExpiry     time.Duration
	SecureCookies   bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	StreamAPIKey    string
	StreamAPISecret string
	CORSOrigins     []string
	NotificationTTL time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// LoadConfig reads the .env file (if any) and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Port:            v.GetString("PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		StorageDriver:   strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDB:         v.GetString("MONGO_DB"),
		MongoUseTx:      v.GetBool("MONGO_TRANSACTIONS"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenExpiry:     v.GetDuration("TOKEN_EXPIRY"),
		SecureCookies:   v.GetBool("SECURE_COOKIES"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		StreamAPIKey:    v.GetString("STREAM_API_KEY"),
		StreamAPISecret: v.GetString("STREAM_API_SECRET"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		NotificationTTL: v.GetDuration("NOTIFICATION_TTL"),
		ReadTimeout:     v.GetDuration("READ_TIMEOUT"),
		WriteTimeout:    v.GetDuration("WRITE_TIMEOUT"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5002")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "langbridge")
	v.SetDefault("MONGO_TRANSACTIONS", true)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_EXPIRY", 7*24*time.Hour)
	v.SetDefault("SECURE_COOKIES", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("NOTIFICATION_TTL", 7*24*time.Hour)
	v.SetDefault("READ_TIMEOUT", 15*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 15*time.Second)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
