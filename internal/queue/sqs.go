package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQS implements Queue on an Amazon SQS queue. Redrive to the dead-letter
// queue is configured on the queue itself (source queue, target queue,
// maxReceiveCount); this client only sends, receives, and deletes.
type SQS struct {
	client   *sqs.Client
	queueURL string
	waitTime time.Duration
}

// NewSQS creates a queue client for the given queue URL. waitTime enables
// long polling on Receive; zero means short polling.
func NewSQS(client *sqs.Client, queueURL string, waitTime time.Duration) *SQS {
	return &SQS{
		client:   client,
		queueURL: queueURL,
		waitTime: waitTime,
	}
}

// Send enqueues a message.
func (q *SQS) Send(ctx context.Context, body []byte) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", q.queueURL, err)
	}
	return nil
}

// Receive fetches up to max messages, requesting the receive count so the
// envelope carries the queue-managed delivery count.
func (q *SQS) Receive(ctx context.Context, max int, visibility time.Duration) ([]Envelope, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: int32(max),
		VisibilityTimeout:   int32(visibility / time.Second),
		WaitTimeSeconds:     int32(q.waitTime / time.Second),
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("receive from %s: %w", q.queueURL, err)
	}

	envelopes := make([]Envelope, 0, len(out.Messages))
	for _, msg := range out.Messages {
		count := 0
		if raw, ok := msg.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)]; ok {
			count, _ = strconv.Atoi(raw)
		}
		envelopes = append(envelopes, Envelope{
			MessageID:     aws.ToString(msg.MessageId),
			Body:          []byte(aws.ToString(msg.Body)),
			ReceiptHandle: aws.ToString(msg.ReceiptHandle),
			DeliveryCount: count,
		})
	}
	return envelopes, nil
}

// Delete acknowledges a delivery.
func (q *SQS) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", q.queueURL, err)
	}
	return nil
}
