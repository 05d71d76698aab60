package config

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORE_SUBMISSIONS", "SEND_CONFIRMATION_EMAIL", "EMAIL_DELIVERY_MODE",
		"MAIL_PROVIDER", "SMTP_HOST", "SMTP_PORT", "EMAIL_WORKERS", "EMAIL_QUEUE_SIZE",
		"EMAIL_SEND_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGINS", "EMAIL_REPLY_TO",
	} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.StoreSubmissions)
	assert.True(t, cfg.SendConfirmationEmail)
	assert.False(t, cfg.SyncDelivery())
	assert.Equal(t, 30*time.Second, cfg.EmailSendTimeout)
	assert.Empty(t, cfg.EmailReplyTo)
}

func TestLoadConfigDoesNotLogMissingCredentials(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	t.Setenv("MAIL_PROVIDER", ProviderSMTP)
	t.Setenv("SEND_CONFIRMATION_EMAIL", "true")
	unsetEnv(t, "EMAIL_SENDER")
	unsetEnv(t, "EMAIL_PASSWORD")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.SMTPConfigured())
	// The fallback is reported once, by the transport setup at startup
	assert.Empty(t, buf.String())
}

func TestLoadConfigMailSettings(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "SES")
	t.Setenv("EMAIL_REPLY_TO", "hola@example.com")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderSES, cfg.MailProvider)
	assert.Equal(t, "hola@example.com", cfg.EmailReplyTo)
	assert.Equal(t, "eu-west-1", cfg.AWSRegion)
	assert.Equal(t, "AKIDEXAMPLE", cfg.AWSAccessKeyID)
	assert.Equal(t, "secret", cfg.AWSSecretAccessKey)
}

func TestLoadConfigRejectsUnknownModes(t *testing.T) {
	t.Run("Should reject unknown delivery mode", func(t *testing.T) {
		t.Setenv("EMAIL_DELIVERY_MODE", "later")
		t.Setenv("MAIL_PROVIDER", "smtp")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "EMAIL_DELIVERY_MODE")
	})

	t.Run("Should reject unknown provider", func(t *testing.T) {
		t.Setenv("EMAIL_DELIVERY_MODE", "sync")
		t.Setenv("MAIL_PROVIDER", "pigeon")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "MAIL_PROVIDER")
	})

	t.Run("Should reject non positive worker count", func(t *testing.T) {
		t.Setenv("EMAIL_DELIVERY_MODE", "deferred")
		t.Setenv("MAIL_PROVIDER", "log")
		t.Setenv("EMAIL_WORKERS", "0")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "EMAIL_WORKERS")
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "nope")
	assert.Equal(t, 7, getEnvInt("CFG_TEST_INT", 7))

	t.Setenv("CFG_TEST_BOOL", "false")
	assert.False(t, getEnvBool("CFG_TEST_BOOL", true))

	t.Setenv("CFG_TEST_LIST", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CFG_TEST_LIST", nil))
}

func TestSMTPConfigured(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.gmail.com"}
	assert.False(t, cfg.SMTPConfigured())

	cfg.EmailSender = "noreply@example.com"
	cfg.EmailPassword = "app-password"
	assert.True(t, cfg.SMTPConfigured())
}

// unsetEnv removes key for the duration of the test, restoring it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
