package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultDialTimeout = 10 * time.Second

var errStartTLSUnsupported = errors.New("relay does not offer STARTTLS")

// SMTPConfig holds the relay address and sender credentials
type SMTPConfig struct {
	Host     string
	Port     string
	Username string // sender address, also used as MAIL FROM
	Password string
	// TLSConfig overrides the STARTTLS configuration, mainly for tests
	TLSConfig   *tls.Config
	DialTimeout time.Duration
}

// SMTPTransport delivers messages through an SMTP relay using STARTTLS and
// AUTH PLAIN. Each Send opens and closes its own connection.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates a transport for the given relay. Host and port are required.
func NewSMTPTransport(cfg SMTPConfig) (*SMTPTransport, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("SMTP host and port are required")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	return &SMTPTransport{cfg: cfg}, nil
}

func (t *SMTPTransport) Name() string {
	return "smtp"
}

// Send delivers msg: connect, STARTTLS, authenticate, MAIL/RCPT/DATA, QUIT.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = t.cfg.Username
	}

	fromAddr, err := mail.ParseAddress(from)
	if err != nil {
		return fmt.Errorf("%w: invalid sender %q: %w", ErrTransport, from, err)
	}

	raw, err := buildMIMEMessage(fromAddr, msg)
	if err != nil {
		return fmt.Errorf("%w: build message: %w", ErrTransport, err)
	}

	addr := net.JoinHostPort(t.cfg.Host, t.cfg.Port)
	dialer := net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", ErrTransport, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: greeting: %w", ErrTransport, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("%w: %w", ErrTransport, errStartTLSUnsupported)
	}
	if err := client.StartTLS(t.tlsConfig()); err != nil {
		return fmt.Errorf("%w: starttls: %w", ErrTransport, err)
	}

	if t.cfg.Username != "" {
		auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return classifyAuthError(err)
		}
	}

	if err := client.Mail(fromAddr.Address); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %w", ErrTransport, err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%w: RCPT TO %s: %w", ErrTransport, rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %w", ErrTransport, err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("%w: write body: %w", ErrTransport, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: end of data: %w", ErrTransport, err)
	}

	// The message is accepted once DATA closes; a failed QUIT is not a delivery failure
	_ = client.Quit()
	return nil
}

func (t *SMTPTransport) tlsConfig() *tls.Config {
	if t.cfg.TLSConfig != nil {
		return t.cfg.TLSConfig
	}
	return &tls.Config{
		ServerName: t.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
}

// classifyAuthError maps relay replies that reject the credentials to
// ErrAuthentication. 530/534/535 are the codes relays (Gmail included) use
// for missing, refused or invalid credentials.
func classifyAuthError(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
	}
	return fmt.Errorf("%w: auth: %w", ErrTransport, err)
}

// buildMIMEMessage renders an RFC 5322 HTML message with a quoted-printable body
func buildMIMEMessage(fromAddr *mail.Address, msg *Message) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", fromAddr.String())
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", uuid.NewString(), senderDomain(fromAddr.Address))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.HTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func senderDomain(address string) string {
	if _, domain, ok := strings.Cut(address, "@"); ok && domain != "" {
		return domain
	}
	return "localhost"
}
