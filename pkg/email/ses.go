package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
)

// SESConfig holds the configuration for creating a SESTransport.
// Static keys are optional; the default AWS credential chain is used otherwise.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// SendEmailAPI is the subset of the SES v2 client the transport needs
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESTransport sends messages through the AWS SES v2 API
type SESTransport struct {
	sender string
	client SendEmailAPI
}

// authErrorCodes are SES/STS error codes meaning the caller's credentials were refused
var authErrorCodes = map[string]bool{
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"AccessDeniedException":       true,
	"ExpiredTokenException":       true,
}

// NewSESTransport loads AWS configuration and builds the SES client
func NewSESTransport(ctx context.Context, cfg SESConfig) (*SESTransport, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewSESTransportWithClient(cfg.Sender, sesv2.NewFromConfig(awsCfg)), nil
}

// NewSESTransportWithClient creates a SESTransport with a custom client, used for testing
func NewSESTransportWithClient(sender string, client SendEmailAPI) *SESTransport {
	return &SESTransport{sender: sender, client: client}
}

func (s *SESTransport) Name() string {
	return "ses"
}

// Send delivers msg with a single SendEmail call. Failures are not retried.
func (s *SESTransport) Send(ctx context.Context, msg *Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = s.sender
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return classifySESError(err)
	}
	return nil
}

func classifySESError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && authErrorCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return fmt.Errorf("%w: SES SendEmail: %w", ErrTransport, err)
}
