package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg *Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockTransport) Name() string {
	return "mock"
}

func TestSendConfirmation(t *testing.T) {
	transport := new(MockTransport)
	svc := NewEmailService(transport, nil, "noreply@example.com")

	transport.On("Send", mock.Anything, mock.AnythingOfType("*email.Message")).Return(nil).Run(func(args mock.Arguments) {
		msg := args.Get(1).(*Message)
		assert.Equal(t, "noreply@example.com", msg.From)
		assert.Equal(t, []string{"ana@example.com"}, msg.To)
		assert.Equal(t, "Verificación de correo electrónico", msg.Subject)
		assert.Empty(t, msg.ReplyTo)
		assert.Contains(t, msg.HTML, "Hola Ana Lopez,")
	})

	err := svc.SendConfirmation(context.Background(), "ana@example.com", "Verificación de correo electrónico", ConfirmationData{
		FirstName: "Ana",
		LastName:  "Lopez",
		Message:   "Hola, necesito informacion",
	})
	require.NoError(t, err)
	transport.AssertExpectations(t)
	assert.Equal(t, "mock", svc.TransportName())
}

func TestSendConfirmationKeepsErrorClass(t *testing.T) {
	transport := new(MockTransport)
	svc := NewEmailService(transport, NewComposer(), "noreply@example.com")

	transport.On("Send", mock.Anything, mock.Anything).Return(errors.Join(ErrAuthentication, errors.New("535")))

	err := svc.SendConfirmation(context.Background(), "ana@example.com", "Asunto", ConfirmationData{FirstName: "Ana", LastName: "Lopez", Message: "Hola, necesito informacion"})
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), "via mock")
}

func TestSendConfirmationWithReplyTo(t *testing.T) {
	transport := new(MockTransport)
	svc := NewEmailService(transport, nil, "noreply@example.com").WithReplyTo("hola@example.com")

	transport.On("Send", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		assert.Equal(t, "hola@example.com", args.Get(1).(*Message).ReplyTo)
	})

	err := svc.SendConfirmation(context.Background(), "ana@example.com", "Asunto", ConfirmationData{FirstName: "Ana", LastName: "Lopez", Message: "Hola, necesito informacion"})
	require.NoError(t, err)
	transport.AssertExpectations(t)
}
