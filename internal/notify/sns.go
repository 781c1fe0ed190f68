package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"booking-go/internal/booking"
)

// snsPublisher is the part of the SNS client the sender uses.
type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSOptions configures the AWS connection for SNSSmsSender.
type SNSOptions struct {
	Region string
	// SenderID is shown as the sender on handsets that support it.
	SenderID string
	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// SNSSmsSender publishes the confirmation SMS directly to the customer's
// phone number through Amazon SNS.
type SNSSmsSender struct {
	client   snsPublisher
	senderID string
	ids      booking.IDGenerator
}

// NewSNSSmsSender loads AWS configuration and creates an SNS client.
func NewSNSSmsSender(ctx context.Context, opts SNSOptions, ids booking.IDGenerator) (*SNSSmsSender, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return newSNSSmsSender(sns.NewFromConfig(cfg), opts.SenderID, ids), nil
}

func newSNSSmsSender(client snsPublisher, senderID string, ids booking.IDGenerator) *SNSSmsSender {
	if ids == nil {
		ids = booking.UUIDGenerator{}
	}
	return &SNSSmsSender{client: client, senderID: senderID, ids: ids}
}

func (s *SNSSmsSender) Send(ctx context.Context, schedule booking.Schedule) error {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
		"booking.message_id": {
			DataType:    aws.String("String"),
			StringValue: aws.String(s.ids.New()),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(schedule.Customer().PhoneNumber()),
		Message:           aws.String(SmsBody(schedule)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish failed: %w", err)
	}
	return nil
}

var _ booking.SmsSender = (*SNSSmsSender)(nil)
