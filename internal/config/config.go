package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Remote     RemoteConfig
	LocalStore LocalStoreConfig
	Sync       SyncConfig
	Tax        TaxConfig
	JWT        JWTConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type MongoConfig struct {
	URL      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Remote drivers
const (
	RemoteDriverPostgres = "postgres"
	RemoteDriverMongo    = "mongo"
)

type RemoteConfig struct {
	Driver string
}

// Local store drivers
const (
	LocalStoreFile   = "file"
	LocalStoreRedis  = "redis"
	LocalStoreMemory = "memory"
)

type LocalStoreConfig struct {
	Driver string
	Path   string
	Prefix string
}

type SyncConfig struct {
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
	DrainInterval time.Duration
}

type TaxConfig struct {
	ServiceChargeRate float64
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "frontdesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "atlantic_hotel")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Lagos")
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "atlantic_hotel")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REMOTE_DRIVER", RemoteDriverPostgres)
	viper.SetDefault("LOCAL_STORE_DRIVER", LocalStoreFile)
	viper.SetDefault("LOCAL_STORE_PATH", "./storage/frontdesk.json")
	viper.SetDefault("LOCAL_STORE_PREFIX", "frontdesk")
	viper.SetDefault("SYNC_PROBE_INTERVAL", 15)
	viper.SetDefault("SYNC_PROBE_TIMEOUT", 5)
	viper.SetDefault("SYNC_DRAIN_INTERVAL", 30)
	viper.SetDefault("SERVICE_CHARGE_RATE", 0.10)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Mongo: MongoConfig{
			URL:      viper.GetString("MONGO_URL"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Remote: RemoteConfig{
			Driver: viper.GetString("REMOTE_DRIVER"),
		},
		LocalStore: LocalStoreConfig{
			Driver: viper.GetString("LOCAL_STORE_DRIVER"),
			Path:   viper.GetString("LOCAL_STORE_PATH"),
			Prefix: viper.GetString("LOCAL_STORE_PREFIX"),
		},
		Sync: SyncConfig{
			ProbeInterval: time.Duration(viper.GetInt("SYNC_PROBE_INTERVAL")) * time.Second,
			ProbeTimeout:  time.Duration(viper.GetInt("SYNC_PROBE_TIMEOUT")) * time.Second,
			DrainInterval: time.Duration(viper.GetInt("SYNC_DRAIN_INTERVAL")) * time.Second,
		},
		Tax: TaxConfig{
			ServiceChargeRate: viper.GetFloat64("SERVICE_CHARGE_RATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
