package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	APIVersion     string   `mapstructure:"API_VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	PrettyLog bool   `mapstructure:"PRETTY_LOG"`

	StoreDriver         string        `mapstructure:"STORE_DRIVER"`
	MongoURI            string        `mapstructure:"MONGO_URI"`
	MongoDB             string        `mapstructure:"MONGO_DB"`
	MongoCollection     string        `mapstructure:"MONGO_COLLECTION"`
	MongoMaxPoolSize    uint64        `mapstructure:"MONGO_MAX_POOL_SIZE"`
	MongoConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	MongoQueryTimeout   time.Duration `mapstructure:"MONGO_QUERY_TIMEOUT"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost       string   `mapstructure:"MAIL_HOST"`
	MailPort       int      `mapstructure:"MAIL_PORT"`
	MailUser       string   `mapstructure:"MAIL_USER"`
	MailPassword   string   `mapstructure:"MAIL_PASSWORD"`
	MailSender     string   `mapstructure:"MAIL_SENDER"`
	MailRecipients []string `mapstructure:"MAIL_RECIPIENTS"`

	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"PORT":                  ":4000",
	"ENVIRONMENT":           "development",
	"VERSION":               "1.0.0",
	"API_VERSION":           "/api/v1",
	"TRUSTED_ORIGINS":       "",
	"TLS_CERT_FILE":         "",
	"TLS_KEY_FILE":          "",
	"LOG_LEVEL":             "info",
	"PRETTY_LOG":            true,
	"STORE_DRIVER":          "mongo",
	"MONGO_URI":             "mongodb://localhost:27017",
	"MONGO_DB":              "blogapp",
	"MONGO_COLLECTION":      "blogs",
	"MONGO_MAX_POOL_SIZE":   10,
	"MONGO_CONNECT_TIMEOUT": "10s",
	"MONGO_QUERY_TIMEOUT":   "5s",
	"RABBITMQ_HOST":         "",
	"RABBITMQ_PORT":         "5672",
	"RABBITMQ_USER":         "",
	"RABBITMQ_PASSWORD":     "",
	"MAIL_HOST":             "",
	"MAIL_PORT":             587,
	"MAIL_USER":             "",
	"MAIL_PASSWORD":         "",
	"MAIL_SENDER":           "",
	"MAIL_RECIPIENTS":       "",
	"SHUTDOWN_TIMEOUT":      "30s",
}

// loadConfig reads an optional dotenv file at path and overlays the process environment.
// A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.TrustedOrigins = compact(config.TrustedOrigins)
	config.MailRecipients = compact(config.MailRecipients)
	config.APIVersion = "/" + strings.Trim(config.APIVersion, "/")

	switch config.StoreDriver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.StoreDriver)
	}

	return &config, nil
}

func (c *Config) amqpURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}

// compact trims every entry and drops the blank ones.
func compact(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
