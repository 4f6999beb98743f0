package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Classifier ClassifierConfig
	Scheduling SchedulingConfig
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

// ClassifierConfig selects the triage backend. Provider is one of
// "keyword", "bedrock" or "gemini".
type ClassifierConfig struct {
	Provider       string
	Timeout        time.Duration
	AWSRegion      string
	BedrockModelID string
	GeminiAPIKey   string
	GeminiModelID  string
}

type SchedulingConfig struct {
	SlotLockTTL time.Duration
	AutoMigrate bool
}

const (
	ClassifierKeyword = "keyword"
	ClassifierBedrock = "bedrock"
	ClassifierGemini  = "gemini"
)

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ISSUER", "medsched")
	viper.SetDefault("CLASSIFIER_PROVIDER", ClassifierKeyword)
	viper.SetDefault("CLASSIFIER_TIMEOUT", "8s")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("GEMINI_MODEL_ID", "gemini-2.5-flash")
	viper.SetDefault("SLOT_LOCK_TTL", "15s")
	viper.SetDefault("DB_AUTO_MIGRATE", false)
}

func LoadConfig() (*Config, error) {
	setDefaults()
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Environment-only deployments have no .env file.
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	classifierTimeout, err := time.ParseDuration(viper.GetString("CLASSIFIER_TIMEOUT"))
	if err != nil {
		classifierTimeout = 8 * time.Second
	}

	slotLockTTL, err := time.ParseDuration(viper.GetString("SLOT_LOCK_TTL"))
	if err != nil {
		slotLockTTL = 15 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:       viper.GetString("APP_PORT"),
			Env:        viper.GetString("APP_ENV"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
			CORSOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			TimeZone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Issuer: viper.GetString("JWT_ISSUER"),
		},
		Classifier: ClassifierConfig{
			Provider:       viper.GetString("CLASSIFIER_PROVIDER"),
			Timeout:        classifierTimeout,
			AWSRegion:      viper.GetString("AWS_REGION"),
			BedrockModelID: viper.GetString("BEDROCK_MODEL_ID"),
			GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
			GeminiModelID:  viper.GetString("GEMINI_MODEL_ID"),
		},
		Scheduling: SchedulingConfig{
			SlotLockTTL: slotLockTTL,
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
	}

	return config, nil
}

// DSN builds the postgres connection string shared by gorm and the migrator.
func (c DBConfig) DSN() string {
	return "host=" + c.Host + " user=" + c.User + " password=" + c.Password +
		" dbname=" + c.Name + " port=" + c.Port + " sslmode=" + c.SSLMode + " TimeZone=" + c.TimeZone
}

// URL builds the postgres URL form expected by golang-migrate.
func (c DBConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SSLMode
}
