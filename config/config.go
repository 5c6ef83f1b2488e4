package config

import (
	"log"
	"time"

	"roombooking/models"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Ledger storage: "memory", "mongo" or "redis".
	LedgerBackend string `mapstructure:"LEDGER_BACKEND"`
	LedgerKey     string `mapstructure:"LEDGER_KEY"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLedgerDB int    `mapstructure:"REDIS_LEDGER_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Remote notification. An empty URL disables the webhook.
	WebhookURL         string        `mapstructure:"WEBHOOK_URL"`
	WebhookTimeout     time.Duration `mapstructure:"WEBHOOK_TIMEOUT"`
	WebhookMaxAttempts int           `mapstructure:"WEBHOOK_MAX_ATTEMPTS"`
	WebhookRetryQueue  bool          `mapstructure:"WEBHOOK_RETRY_QUEUE"`

	// Chat announcement. An empty path means no host messaging environment.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	SideChannelTimeout time.Duration `mapstructure:"SIDE_CHANNEL_TIMEOUT"`

	// Catalog overrides, normally set from config.yaml.
	Rooms     []models.Room `mapstructure:"ROOMS"`
	TimeSlots []string      `mapstructure:"TIME_SLOTS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("LEDGER_BACKEND", "memory")
	v.SetDefault("LEDGER_KEY", "bookings:ledger")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "roombooking")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LEDGER_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_TIMEOUT", 5*time.Second)
	v.SetDefault("WEBHOOK_MAX_ATTEMPTS", 3)
	v.SetDefault("WEBHOOK_RETRY_QUEUE", false)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("SIDE_CHANNEL_TIMEOUT", 8*time.Second)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves TIMEZONE, falling back to the process zone.
func Location() *time.Location {
	if AppConfig.Timezone == "" || AppConfig.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time", AppConfig.Timezone)
		return time.Local
	}
	return loc
}
