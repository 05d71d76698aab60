package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"contact-form-backend/pkg/validation"

	"github.com/google/uuid"
)

// ConfirmationSubject is the subject of every confirmation email
const ConfirmationSubject = "Verificación de correo electrónico"

var (
	ErrStorageDisabled = errors.New("submission storage is disabled")
	ErrEmailDisabled   = errors.New("confirmation email is disabled")
	// ErrDeliveryFailed wraps transport errors from a synchronous send
	ErrDeliveryFailed = errors.New("confirmation email delivery failed")
)

// ContactRequest is the raw contact form payload.
// The Spanish keys are canonical; the English ones are accepted as aliases.
type ContactRequest struct {
	FirstName string `json:"nombre" validate:"required,min=2,max=50"`
	LastName  string `json:"apellidos" validate:"required,min=2,max=50"`
	Email     string `json:"correo" validate:"required,email"`
	Message   string `json:"mensaje" validate:"required,min=10,max=500"`
}

func (r *ContactRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nombre    *string `json:"nombre"`
		Apellidos *string `json:"apellidos"`
		Correo    *string `json:"correo"`
		Mensaje   *string `json:"mensaje"`
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Email     *string `json:"email"`
		Message   *string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.FirstName = firstOf(raw.Nombre, raw.FirstName)
	r.LastName = firstOf(raw.Apellidos, raw.LastName)
	r.Email = firstOf(raw.Correo, raw.Email)
	r.Message = firstOf(raw.Mensaje, raw.Message)
	return nil
}

func firstOf(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

// ValidationError lists every constraint a ContactRequest violated
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid contact submission: " + strings.Join(msgs, "; ")
}

// Has reports whether field violated any constraint
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ContactSubmission is a validated contact form entry. It cannot be modified
// after NewContactSubmission returns.
type ContactSubmission struct {
	id         uuid.UUID
	firstName  string
	lastName   string
	email      string
	message    string
	receivedAt time.Time
}

// NewContactSubmission trims and validates req. Nothing is constructed when a
// constraint fails; the error is then a *ValidationError.
func NewContactSubmission(req ContactRequest) (*ContactSubmission, error) {
	req = ContactRequest{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
	}

	if err := validation.Default().Struct(req); err != nil {
		return nil, &ValidationError{Fields: validation.Describe(err)}
	}

	return &ContactSubmission{
		id:         uuid.New(),
		firstName:  req.FirstName,
		lastName:   req.LastName,
		email:      req.Email,
		message:    req.Message,
		receivedAt: time.Now().UTC(),
	}, nil
}

func (s *ContactSubmission) ID() uuid.UUID         { return s.id }
func (s *ContactSubmission) FirstName() string     { return s.firstName }
func (s *ContactSubmission) LastName() string      { return s.lastName }
func (s *ContactSubmission) Email() string         { return s.email }
func (s *ContactSubmission) Message() string       { return s.message }
func (s *ContactSubmission) ReceivedAt() time.Time { return s.receivedAt }

// FullName joins first and last name
func (s *ContactSubmission) FullName() string {
	return s.firstName + " " + s.lastName
}

func (s *ContactSubmission) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         uuid.UUID `json:"id"`
		FirstName  string    `json:"nombre"`
		LastName   string    `json:"apellidos"`
		Email      string    `json:"correo"`
		Message    string    `json:"mensaje"`
		ReceivedAt time.Time `json:"recibido_en"`
	}{s.id, s.firstName, s.lastName, s.email, s.message, s.receivedAt})
}

// DeliveryTask is one pending confirmation email. It is consumed exactly once
// and carries no retry state.
type DeliveryTask struct {
	ID         uuid.UUID
	Submission *ContactSubmission
	Recipient  string
	Subject    string
	CreatedAt  time.Time
}

// NewDeliveryTask addresses a confirmation to the submitter
func NewDeliveryTask(sub *ContactSubmission, subject string) *DeliveryTask {
	return &DeliveryTask{
		ID:         uuid.New(),
		Submission: sub,
		Recipient:  sub.Email(),
		Subject:    subject,
		CreatedAt:  time.Now().UTC(),
	}
}

// DeliveryOutcome reports how a DeliveryTask ended. Err is nil on success.
type DeliveryOutcome struct {
	TaskID     uuid.UUID
	Recipient  string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// SubmissionReceipt is what the use case hands back to the handler
type SubmissionReceipt struct {
	Submission *ContactSubmission
	// Task is nil when confirmation emails are disabled
	Task    *DeliveryTask
	Message string
}

// SubmissionRepository stores accepted submissions in arrival order
type SubmissionRepository interface {
	Append(ctx context.Context, sub *ContactSubmission) error
	List(ctx context.Context) ([]*ContactSubmission, error)
}

// TaskQueue accepts delivery tasks for background execution
type TaskQueue interface {
	Enqueue(task *DeliveryTask) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the request, stores it when storage is enabled and
	// prepares the confirmation task when email is enabled
	Submit(ctx context.Context, req *ContactRequest) (*SubmissionReceipt, error)
	// SubmitSync validates the request and sends the confirmation before
	// storing, so a failed send leaves nothing stored
	SubmitSync(ctx context.Context, req *ContactRequest) (*SubmissionReceipt, error)
	// Deliver composes and sends the confirmation email for task
	Deliver(ctx context.Context, task *DeliveryTask) error
	// ListSubmissions returns every stored submission in arrival order
	ListSubmissions(ctx context.Context) ([]*ContactSubmission, error)
}
