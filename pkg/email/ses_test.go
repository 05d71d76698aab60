package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSESClient implements SendEmailAPI for testing.
type mockSESClient struct {
	err       error
	callCount int
	lastInput *sesv2.SendEmailInput
}

func (m *mockSESClient) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.callCount++
	m.lastInput = params
	if m.err != nil {
		return nil, m.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("test-message-id")}, nil
}

func TestSESTransportSend(t *testing.T) {
	client := &mockSESClient{}
	tr := NewSESTransportWithClient("noreply@example.com", client)

	require.NoError(t, tr.Send(context.Background(), testMessage()))
	require.Equal(t, 1, client.callCount)

	input := client.lastInput
	assert.Equal(t, "noreply@example.com", *input.FromEmailAddress)
	assert.Equal(t, []string{"ana@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Verificación de correo electrónico", *input.Content.Simple.Subject.Data)
	assert.Equal(t, "<p>Hola Ana Lopez</p>", *input.Content.Simple.Body.Html.Data)
	assert.Nil(t, input.Content.Simple.Body.Text)
	assert.Equal(t, "ses", tr.Name())
}

func TestSESTransportErrorTranslation(t *testing.T) {
	t.Run("Should report refused credentials as authentication errors", func(t *testing.T) {
		client := &mockSESClient{err: &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "bad token"}}
		err := NewSESTransportWithClient("noreply@example.com", client).Send(context.Background(), testMessage())

		assert.ErrorIs(t, err, ErrAuthentication)
		assert.Equal(t, 1, client.callCount, "failures are not retried")
	})

	t.Run("Should report other API errors as transport errors", func(t *testing.T) {
		client := &mockSESClient{err: &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified"}}
		err := NewSESTransportWithClient("noreply@example.com", client).Send(context.Background(), testMessage())

		assert.ErrorIs(t, err, ErrTransport)
		assert.False(t, errors.Is(err, ErrAuthentication))
	})

	t.Run("Should report network errors as transport errors", func(t *testing.T) {
		client := &mockSESClient{err: errors.New("dial tcp: i/o timeout")}
		err := NewSESTransportWithClient("noreply@example.com", client).Send(context.Background(), testMessage())

		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestSESTransportValidatesMessage(t *testing.T) {
	client := &mockSESClient{}
	tr := NewSESTransportWithClient("noreply@example.com", client)

	assert.ErrorIs(t, tr.Send(context.Background(), &Message{HTML: "<p>x</p>"}), ErrNoRecipient)
	assert.Zero(t, client.callCount)
}

func TestSESTransportSetsReplyTo(t *testing.T) {
	client := &mockSESClient{}
	tr := NewSESTransportWithClient("noreply@example.com", client)

	msg := testMessage()
	msg.ReplyTo = "hola@example.com"
	require.NoError(t, tr.Send(context.Background(), msg))
	assert.Equal(t, []string{"hola@example.com"}, client.lastInput.ReplyToAddresses)
}
