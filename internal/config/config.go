package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Posting    PostingConfig
	Bridge     BridgeConfig
	Settlement SettlementConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects the store backend: "postgres" or "memory".
type StorageConfig struct {
	Driver        string
	RunMigrations bool
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// PostingConfig tunes the posting engine.
type PostingConfig struct {
	// MaxRetries bounds how often a posting is recomputed after losing an optimistic-lock race.
	MaxRetries int
}

// BridgeConfig names the Redis lists the validation bridge consumes and answers on.
type BridgeConfig struct {
	Enabled                   bool
	AccountValidationRequest  string
	AccountValidationResponse string
	CardValidationRequest     string
	CardValidationResponse    string
	TransactionRequest        string
	TransactionResponse       string
	PollTimeout               time.Duration
}

type SettlementConfig struct {
	Enabled  bool
	Queue    string
	Currency string
	BIC      string
}

// Load reads .env and the environment. Keys map to env vars by upper-casing and
// replacing dots with underscores, e.g. database.host -> DATABASE_HOST.
func Load() Config {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.run_migrations", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "bank_accounts")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("posting.max_retries", 5)

	v.SetDefault("bridge.enabled", true)
	v.SetDefault("bridge.account_validation_request", "account-validation-request")
	v.SetDefault("bridge.account_validation_response", "account-validation-response")
	v.SetDefault("bridge.card_validation_request", "card-validation-request")
	v.SetDefault("bridge.card_validation_response", "card-validation-response")
	v.SetDefault("bridge.transaction_request", "transaction-requests")
	v.SetDefault("bridge.transaction_response", "transaction-responses")
	v.SetDefault("bridge.poll_timeout", 5*time.Second)

	v.SetDefault("settlement.enabled", true)
	v.SetDefault("settlement.queue", "settlement_queue")
	v.SetDefault("settlement.currency", "PEN")
	v.SetDefault("settlement.bic", "BANKPEPL")
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Storage: StorageConfig{
			Driver:        v.GetString("storage.driver"),
			RunMigrations: v.GetBool("storage.run_migrations"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Posting: PostingConfig{
			MaxRetries: v.GetInt("posting.max_retries"),
		},
		Bridge: BridgeConfig{
			Enabled:                   v.GetBool("bridge.enabled"),
			AccountValidationRequest:  v.GetString("bridge.account_validation_request"),
			AccountValidationResponse: v.GetString("bridge.account_validation_response"),
			CardValidationRequest:     v.GetString("bridge.card_validation_request"),
			CardValidationResponse:    v.GetString("bridge.card_validation_response"),
			TransactionRequest:        v.GetString("bridge.transaction_request"),
			TransactionResponse:       v.GetString("bridge.transaction_response"),
			PollTimeout:               v.GetDuration("bridge.poll_timeout"),
		},
		Settlement: SettlementConfig{
			Enabled:  v.GetBool("settlement.enabled"),
			Queue:    v.GetString("settlement.queue"),
			Currency: v.GetString("settlement.currency"),
			BIC:      v.GetString("settlement.bic"),
		},
	}
}
