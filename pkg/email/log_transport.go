package email

import (
	"context"
	"log/slog"
	"strings"
)

// LogTransport records messages in the structured log instead of sending
// them. It is used for local development and when relay credentials are missing.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTransport{logger: logger}
}

func (l *LogTransport) Name() string {
	return "log"
}

// Send always succeeds once the message is well formed
func (l *LogTransport) Send(ctx context.Context, msg *Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "email not sent, logged instead",
		"provider", l.Name(),
		"to", strings.Join(msg.To, ", "),
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	return nil
}
