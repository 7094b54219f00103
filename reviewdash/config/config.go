package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string
	HTTPAddr   string
	LogDir     string
	JWTSecret  string

	// RequestTimeout bounds read endpoints. Import triggers are exempt.
	RequestTimeout time.Duration

	// Server-side import sources.
	ReviewsPath      string
	IntentsPath      string
	WorkAreasPath    string
	CapabilitiesPath string
	TrainingPath     string
	InsightsPath     string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// Model analysis is disabled while the key is empty.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "reviewdash")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("http_addr", ":8000")
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("request_timeout", "60s")
	v.SetDefault("reviews_path", "attached_assets/consolidated_with_llm_openai.csv")
	v.SetDefault("intents_path", "attached_assets/intent_broader_categories.json")
	v.SetDefault("work_areas_path", "attached_assets/work_area_broader_categories.json")
	v.SetDefault("capabilities_path", "attached_assets/user_capabilities_analysis.json")
	v.SetDefault("training_path", "attached_assets/training_recommendation_analysis.json")
	v.SetDefault("insights_path", "attached_assets/category_insights.yaml")
	v.SetDefault("minio_endpoint", "")
	v.SetDefault("minio_access_key", "")
	v.SetDefault("minio_secret_key", "")
	v.SetDefault("minio_bucket", "reviewdash-imports")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-4o")
}

// LoadConfig merges .env, an optional reviewdash.yaml and the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("reviewdash")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// missing config file is fine; env and defaults still apply
	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		DBUser:           v.GetString("db_user"),
		DBPassword:       v.GetString("db_password"),
		DBHost:           v.GetString("db_host"),
		DBPort:           v.GetString("db_port"),
		DBName:           v.GetString("db_name"),
		DBSSLMode:        v.GetString("db_sslmode"),
		HTTPAddr:         v.GetString("http_addr"),
		LogDir:           v.GetString("log_dir"),
		JWTSecret:        v.GetString("jwt_secret"),
		RequestTimeout:   v.GetDuration("request_timeout"),
		ReviewsPath:      v.GetString("reviews_path"),
		IntentsPath:      v.GetString("intents_path"),
		WorkAreasPath:    v.GetString("work_areas_path"),
		CapabilitiesPath: v.GetString("capabilities_path"),
		TrainingPath:     v.GetString("training_path"),
		InsightsPath:     v.GetString("insights_path"),
		MinIOEndpoint:    v.GetString("minio_endpoint"),
		MinIOAccessKey:   v.GetString("minio_access_key"),
		MinIOSecretKey:   v.GetString("minio_secret_key"),
		MinIOBucket:      v.GetString("minio_bucket"),
		MinIOUseSSL:      v.GetBool("minio_use_ssl"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIBaseURL:    v.GetString("openai_base_url"),
		OpenAIModel:      v.GetString("openai_model"),
	}
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode
}
