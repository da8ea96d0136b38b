package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/elC0mpa/snapshot-doctor/model"
)

func NewService() *service {
	return &service{maxAttempts: 5}
}

// GetAWSCfg loads the shared config chain for the given region and profile.
// An empty profile selects the default chain.
func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithRetryMaxAttempts(s.maxAttempts),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, &model.PrerequisiteError{Prerequisite: "aws configuration", Err: err}
	}
	return cfg, nil
}
