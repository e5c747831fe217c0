package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port       string `mapstructure:"port"`
		Env        string `mapstructure:"env"`
		SiteOrigin string `mapstructure:"site_origin"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	OAuth struct {
		GoogleClientID     string `mapstructure:"google_client_id"`
		GoogleClientSecret string `mapstructure:"google_client_secret"`
		GoogleRedirectURL  string `mapstructure:"google_redirect_url"`
	} `mapstructure:"oauth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
	RateLimit struct {
		PublicPerMinute int `mapstructure:"public_per_minute"`
		PublicBurst     int `mapstructure:"public_burst"`
	} `mapstructure:"rate_limit"`
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.site_origin", "http://localhost:5173")
	viper.SetDefault("auth.token_lifespan", "24h")
	viper.SetDefault("rate_limit.public_per_minute", 120)
	viper.SetDefault("rate_limit.public_burst", 30)

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.site_origin", "SITE_ORIGIN")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	viper.BindEnv("oauth.google_client_id", "GOOGLE_OAUTH_CLIENT_ID")
	viper.BindEnv("oauth.google_client_secret", "GOOGLE_OAUTH_CLIENT_SECRET")
	viper.BindEnv("oauth.google_redirect_url", "GOOGLE_OAUTH_REDIRECT_URL")

	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	viper.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")
	viper.BindEnv("rate_limit.public_per_minute", "RATE_LIMIT_PUBLIC_PER_MINUTE")
	viper.BindEnv("rate_limit.public_burst", "RATE_LIMIT_PUBLIC_BURST")

	err = viper.Unmarshal(&cfg)
	return
}
