package domain_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"contact-form-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() domain.ContactRequest {
	return domain.ContactRequest{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.com",
		Message:   "Hola, necesito informacion",
	}
}

func TestNewContactSubmissionAcceptsBounds(t *testing.T) {
	for _, nameLen := range []int{2, 3, 25, 49, 50} {
		for _, msgLen := range []int{10, 11, 250, 499, 500} {
			req := validRequest()
			req.FirstName = strings.Repeat("a", nameLen)
			req.LastName = strings.Repeat("ñ", nameLen)
			req.Message = strings.Repeat("m", msgLen)

			sub, err := domain.NewContactSubmission(req)
			require.NoError(t, err, "name=%d message=%d", nameLen, msgLen)
			assert.Equal(t, req.FirstName, sub.FirstName())
			assert.Equal(t, req.LastName, sub.LastName())
			assert.Equal(t, req.Message, sub.Message())
		}
	}
}

func TestNewContactSubmissionRejectsOutOfBounds(t *testing.T) {
	cases := []struct {
		name  string
		field string
		mut   func(r *domain.ContactRequest)
	}{
		{"first name too short", "nombre", func(r *domain.ContactRequest) { r.FirstName = "A" }},
		{"first name too long", "nombre", func(r *domain.ContactRequest) { r.FirstName = strings.Repeat("a", 51) }},
		{"first name missing", "nombre", func(r *domain.ContactRequest) { r.FirstName = "" }},
		{"last name too short", "apellidos", func(r *domain.ContactRequest) { r.LastName = "L" }},
		{"last name too long", "apellidos", func(r *domain.ContactRequest) { r.LastName = strings.Repeat("é", 51) }},
		{"message too short", "mensaje", func(r *domain.ContactRequest) { r.Message = "Hola" }},
		{"message too long", "mensaje", func(r *domain.ContactRequest) { r.Message = strings.Repeat("m", 501) }},
		{"email malformed", "correo", func(r *domain.ContactRequest) { r.Email = "ana@" }},
		{"email missing", "correo", func(r *domain.ContactRequest) { r.Email = "   " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mut(&req)

			sub, err := domain.NewContactSubmission(req)
			assert.Nil(t, sub)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.True(t, vErr.Has(tc.field), "expected violation on %s, got %v", tc.field, vErr.Fields)
			assert.Len(t, vErr.Fields, 1)
		})
	}
}

func TestNewContactSubmissionTrims(t *testing.T) {
	req := validRequest()
	req.FirstName = "  Ana "
	req.Message = "\n  Hola, necesito informacion  "

	sub, err := domain.NewContactSubmission(req)
	require.NoError(t, err)
	assert.Equal(t, "Ana", sub.FirstName())
	assert.Equal(t, "Hola, necesito informacion", sub.Message())
	assert.Equal(t, "Ana Lopez", sub.FullName())

	// Padding does not count towards the minimum
	req.FirstName = " A "
	_, err = domain.NewContactSubmission(req)
	assert.Error(t, err)
}

func TestContactRequestAcceptsEnglishAliases(t *testing.T) {
	var req domain.ContactRequest
	err := json.Unmarshal([]byte(`{"firstName":"Ana","lastName":"Lopez","email":"ana@example.com","message":"Hola, necesito informacion"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, validRequest(), req)

	// Spanish keys win when both are present
	err = json.Unmarshal([]byte(`{"nombre":"Eva","firstName":"Ana"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "Eva", req.FirstName)
}

func TestContactSubmissionJSON(t *testing.T) {
	sub, err := domain.NewContactSubmission(validRequest())
	require.NoError(t, err)

	raw, err := json.Marshal(sub)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Ana", out["nombre"])
	assert.Equal(t, "Lopez", out["apellidos"])
	assert.Equal(t, "ana@example.com", out["correo"])
	assert.Equal(t, "Hola, necesito informacion", out["mensaje"])
	assert.Equal(t, sub.ID().String(), out["id"])
}

func TestNewDeliveryTask(t *testing.T) {
	sub, err := domain.NewContactSubmission(validRequest())
	require.NoError(t, err)

	task := domain.NewDeliveryTask(sub, domain.ConfirmationSubject)
	assert.Equal(t, "ana@example.com", task.Recipient)
	assert.Equal(t, "Verificación de correo electrónico", task.Subject)
	assert.Same(t, sub, task.Submission)
	assert.NotEqual(t, sub.ID(), task.ID)
}
