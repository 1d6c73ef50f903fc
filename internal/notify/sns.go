package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSPublisher implements Publisher on an SNS topic.
type SNSPublisher struct {
	client   *sns.Client
	topicARN string
}

// NewSNSPublisher creates a publisher for the given topic.
func NewSNSPublisher(client *sns.Client, topicARN string) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN}
}

// Publish sends the message to the topic.
func (p *SNSPublisher) Publish(ctx context.Context, message string) error {
	_, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.topicARN, err)
	}
	return nil
}
