package email

import "errors"

var (
	// ErrAuthentication indicates the relay rejected the sender credentials.
	ErrAuthentication = errors.New("mail relay rejected credentials")

	// ErrTransport indicates any other connection, protocol or delivery failure.
	ErrTransport = errors.New("mail transport failure")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render email template")
)
