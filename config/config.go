package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Delivery modes for the confirmation email
const (
	DeliveryDeferred = "deferred"
	DeliverySync     = "sync"
)

// Mail providers
const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
	ProviderLog  = "log"
)

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	CORSAllowedOrigins []string
	// Variant selection
	StoreSubmissions      bool
	SendConfirmationEmail bool
	EmailDeliveryMode     string
	MailProvider          string
	// SMTP relay (Gmail by default)
	SMTPHost      string
	SMTPPort      string
	EmailSender   string
	EmailPassword string
	// EmailReplyTo is where replies to the confirmation go; empty means the sender
	EmailReplyTo string
	// AWS SES; empty keys fall back to the default AWS credential chain
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// Deferred delivery workers
	EmailWorkers     int
	EmailQueueSize   int
	EmailSendTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Only effective locally; missing .env is fine in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		// Variant selection
		StoreSubmissions:      getEnvBool("STORE_SUBMISSIONS", true),
		SendConfirmationEmail: getEnvBool("SEND_CONFIRMATION_EMAIL", true),
		EmailDeliveryMode:     strings.ToLower(getEnv("EMAIL_DELIVERY_MODE", DeliveryDeferred)),
		MailProvider:          strings.ToLower(getEnv("MAIL_PROVIDER", ProviderSMTP)),
		// SMTP relay
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		EmailReplyTo:  getEnv("EMAIL_REPLY_TO", ""),
		// AWS SES
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		// Workers
		EmailWorkers:     getEnvInt("EMAIL_WORKERS", 2),
		EmailQueueSize:   getEnvInt("EMAIL_QUEUE_SIZE", 64),
		EmailSendTimeout: time.Duration(getEnvInt("EMAIL_SEND_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.EmailDeliveryMode {
	case DeliveryDeferred, DeliverySync:
	default:
		return fmt.Errorf("config: invalid EMAIL_DELIVERY_MODE %q", c.EmailDeliveryMode)
	}

	switch c.MailProvider {
	case ProviderSMTP, ProviderSES, ProviderLog:
	default:
		return fmt.Errorf("config: invalid MAIL_PROVIDER %q", c.MailProvider)
	}

	if c.EmailWorkers < 1 {
		return fmt.Errorf("config: EMAIL_WORKERS must be positive, got %d", c.EmailWorkers)
	}
	if c.EmailQueueSize < 1 {
		return fmt.Errorf("config: EMAIL_QUEUE_SIZE must be positive, got %d", c.EmailQueueSize)
	}
	if c.EmailSendTimeout <= 0 {
		return fmt.Errorf("config: EMAIL_SEND_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

// SMTPConfigured reports whether the relay credentials are present
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.EmailSender != "" && c.EmailPassword != ""
}

// SyncDelivery reports whether the handler delivers the email before responding
func (c *Config) SyncDelivery() bool {
	return c.EmailDeliveryMode == DeliverySync
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
