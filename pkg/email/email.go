package email

import (
	"context"
	"fmt"
)

// EmailService composes confirmation emails and hands them to a Transport
type EmailService struct {
	transport Transport
	composer  *Composer
	fromEmail string
	replyTo   string
}

// NewEmailService creates a new email service sending as fromEmail
func NewEmailService(transport Transport, composer *Composer, fromEmail string) *EmailService {
	if composer == nil {
		composer = NewComposer()
	}
	return &EmailService{
		transport: transport,
		composer:  composer,
		fromEmail: fromEmail,
	}
}

// WithReplyTo sets the Reply-To address of every confirmation
func (s *EmailService) WithReplyTo(addr string) *EmailService {
	s.replyTo = addr
	return s
}

// SendConfirmation renders the confirmation template for data and sends it to `to`
func (s *EmailService) SendConfirmation(ctx context.Context, to, subject string, data ConfirmationData) error {
	body, err := s.composer.Compose(data)
	if err != nil {
		return err
	}

	msg := &Message{
		From:    s.fromEmail,
		To:      []string{to},
		ReplyTo: s.replyTo,
		Subject: subject,
		HTML:    body,
	}

	if err := s.transport.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation via %s: %w", s.transport.Name(), err)
	}
	return nil
}

// TransportName returns the name of the configured transport
func (s *EmailService) TransportName() string {
	return s.transport.Name()
}
