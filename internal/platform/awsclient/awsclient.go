// Package awsclient constructs the AWS service clients used by the
// pipeline, honoring an optional endpoint override for local stacks.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/todoworks/todo-pipeline/internal/config"
)

// Load resolves the base AWS configuration for the configured region.
func Load(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}

// NewSQS creates an SQS client.
func NewSQS(awsCfg aws.Config, cfg config.AWSConfig) *sqs.Client {
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// NewS3 creates an S3 client. Path style is forced when an endpoint
// override is set, since local stacks rarely support virtual hosting.
func NewS3(awsCfg aws.Config, cfg config.AWSConfig) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// NewSNS creates an SNS client.
func NewSNS(awsCfg aws.Config, cfg config.AWSConfig) *sns.Client {
	return sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}
