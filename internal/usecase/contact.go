package usecase

import (
	"context"
	"errors"
	"fmt"

	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/email"
)

type contactUsecase struct {
	repo         domain.SubmissionRepository
	emailService *email.EmailService
}

// NewContactUsecase creates a new contact usecase. A nil repo disables
// storage; a nil emailService disables confirmation emails.
func NewContactUsecase(repo domain.SubmissionRepository, emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{
		repo:         repo,
		emailService: emailService,
	}
}

// Submit validates the request and prepares whatever follow-up work the
// configured variant needs. Validation happens before any side effect.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.SubmissionReceipt, error) {
	receipt, err := uc.prepare(req)
	if err != nil {
		return nil, err
	}

	if err := uc.store(ctx, receipt.Submission); err != nil {
		return nil, err
	}
	return receipt, nil
}

// SubmitSync is Submit for the synchronous variant: the confirmation is sent
// first and the submission is only stored once the relay accepted it.
func (uc *contactUsecase) SubmitSync(ctx context.Context, req *domain.ContactRequest) (*domain.SubmissionReceipt, error) {
	receipt, err := uc.prepare(req)
	if err != nil {
		return nil, err
	}

	if receipt.Task != nil {
		if err := uc.Deliver(ctx, receipt.Task); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
		}
	}

	if err := uc.store(ctx, receipt.Submission); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (uc *contactUsecase) prepare(req *domain.ContactRequest) (*domain.SubmissionReceipt, error) {
	if req == nil {
		return nil, errors.New("contact request is nil")
	}

	sub, err := domain.NewContactSubmission(*req)
	if err != nil {
		return nil, err
	}

	receipt := &domain.SubmissionReceipt{Submission: sub}
	if uc.emailService != nil {
		receipt.Task = domain.NewDeliveryTask(sub, domain.ConfirmationSubject)
		receipt.Message = fmt.Sprintf("Formulario recibido. Gracias %s, te enviaremos un correo de confirmación.", sub.FullName())
	} else {
		receipt.Message = fmt.Sprintf("Gracias %s, hemos recibido tu mensaje.", sub.FullName())
	}
	return receipt, nil
}

func (uc *contactUsecase) store(ctx context.Context, sub *domain.ContactSubmission) error {
	if uc.repo == nil {
		return nil
	}
	if err := uc.repo.Append(ctx, sub); err != nil {
		return fmt.Errorf("failed to store submission: %w", err)
	}
	return nil
}

// Deliver composes and sends the confirmation email described by task
func (uc *contactUsecase) Deliver(ctx context.Context, task *domain.DeliveryTask) error {
	if uc.emailService == nil {
		return domain.ErrEmailDisabled
	}
	if task == nil || task.Submission == nil {
		return errors.New("delivery task is empty")
	}

	sub := task.Submission
	return uc.emailService.SendConfirmation(ctx, task.Recipient, task.Subject, email.ConfirmationData{
		FirstName: sub.FirstName(),
		LastName:  sub.LastName(),
		Message:   sub.Message(),
	})
}

func (uc *contactUsecase) ListSubmissions(ctx context.Context) ([]*domain.ContactSubmission, error) {
	if uc.repo == nil {
		return nil, domain.ErrStorageDisabled
	}
	return uc.repo.List(ctx)
}
