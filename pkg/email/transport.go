package email

import "context"

// Message is a fully composed email ready for a Transport
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Transport delivers one message. Failures wrap ErrAuthentication or
// ErrTransport so callers can tell them apart with errors.Is.
// Sending is not idempotent: a retried Send delivers a duplicate.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	// Name returns the provider name, used for logging
	Name() string
}

func validateMessage(msg *Message) error {
	if msg == nil || len(msg.To) == 0 {
		return ErrNoRecipient
	}
	if msg.HTML == "" {
		return ErrNoContent
	}
	return nil
}
