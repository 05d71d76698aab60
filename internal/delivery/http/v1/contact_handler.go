package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"contact-form-backend/internal/delivery/http/middleware"
	"contact-form-backend/internal/delivery/http/response"
	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/apperror"
	"contact-form-backend/pkg/email"
	"contact-form-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// ContactHandlerOptions selects the contact form variant
type ContactHandlerOptions struct {
	// SyncDelivery sends the confirmation before responding instead of
	// deferring it until after the response
	SyncDelivery bool
	// ListEnabled registers GET /contactos
	ListEnabled bool
}

type ContactHandler struct {
	contactUC domain.ContactUsecase
	opts      ContactHandlerOptions
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public gin.IRoutes, contactUC domain.ContactUsecase, opts ContactHandlerOptions) {
	handler := &ContactHandler{
		contactUC: contactUC,
		opts:      opts,
	}

	public.POST("/contacto", handler.SubmitContact)
	if opts.ListEnabled {
		public.GET("/contactos", handler.ListContacts)
	}
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates a contact form submission and schedules a confirmation email to the submitter.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contacto [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Well-formed JSON with a wrong-typed field is a validation failure
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			detail := []validation.FieldError{validation.TypeMismatch(typeErr.Field, typeErr.Type.String())}
			_ = c.Error(apperror.UnprocessableEntity("Validation failed", detail, err))
			return
		}
		_ = c.Error(apperror.BadRequest("Invalid JSON body"))
		return
	}

	submit := h.contactUC.Submit
	if h.opts.SyncDelivery {
		submit = h.contactUC.SubmitSync
	}

	receipt, err := submit(c.Request.Context(), &req)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			_ = c.Error(apperror.UnprocessableEntity("Validation failed", vErr.Fields, err))
		case errors.Is(err, email.ErrAuthentication):
			_ = c.Error(apperror.New(http.StatusInternalServerError, "El servicio de correo no está disponible en este momento.", err))
		case errors.Is(err, domain.ErrDeliveryFailed):
			_ = c.Error(apperror.New(http.StatusInternalServerError, "No se pudo enviar el correo de confirmación. Inténtalo de nuevo más tarde.", err))
		default:
			_ = c.Error(apperror.Internal(err))
		}
		return
	}

	if receipt.Task != nil && !h.opts.SyncDelivery {
		middleware.Defer(c, receipt.Task)
	}

	response.Success(c, http.StatusOK, receipt.Message, nil)
}

// ListContacts godoc
// @Summary      List Contact Submissions
// @Description  Returns every accepted submission in arrival order. Only available when storage is enabled.
// @Tags         contact
// @Produce      json
// @Success      200      {array}   domain.ContactSubmission
// @Failure      500      {object}  response.Response
// @Router       /contactos [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	subs, err := h.contactUC.ListSubmissions(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStorageDisabled) {
			_ = c.Error(apperror.NotFound("Submission storage is disabled"))
			return
		}
		_ = c.Error(apperror.Internal(err))
		return
	}

	if subs == nil {
		subs = []*domain.ContactSubmission{}
	}
	c.JSON(http.StatusOK, subs)
}
