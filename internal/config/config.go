package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process configuration, loaded once at startup and passed to
// every component that needs it.
type Config struct {
	HTTPPort int    `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"`

	// Document store (dashboard users + server config singleton).
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	// Relational game-server stores. The auth DSN points at the database
	// holding the `account` table, the characters DSN at the `characters`
	// table. They are usually the same MySQL instance.
	AuthDBDSN       string `mapstructure:"auth_db_dsn"`
	CharactersDBDSN string `mapstructure:"characters_db_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	JWTSecret string `mapstructure:"jwt_secret"`

	// AdminEmails is the allow-list of addresses promoted to the admin role
	// on Google login.
	AdminEmails []string `mapstructure:"admin_emails"`

	// Realm identity pushed into the game server's realmlist table at boot.
	ServerName   string `mapstructure:"server_name"`
	RealmAddress string `mapstructure:"realm_address"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`
}

// Load reads config.yaml (working directory or ./config) with
// AETHELGARD_-prefixed environment overrides and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("AETHELGARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_port", 4000)
	v.SetDefault("log_level", "info")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "wow_dashboard")
	v.SetDefault("auth_db_dsn", "wowuser@tcp(localhost:3306)/acore_auth?parseTime=true")
	v.SetDefault("characters_db_dsn", "wowuser@tcp(localhost:3306)/characters?parseTime=true")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("admin_emails", []string{"admin@aethelgard.pt"})
	v.SetDefault("server_name", "Aethelgard")
	v.SetDefault("realm_address", "game.aethelgard-wow.com")
	v.SetDefault("smtp_port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine; defaults and env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is not set")
	}
	return &cfg, nil
}

// IsAdminEmail reports whether the address is on the admin allow-list.
// Comparison is case-insensitive.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}
