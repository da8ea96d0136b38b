package awssts

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/elC0mpa/snapshot-doctor/model"
)

func NewService(awsconfig aws.Config) *service {
	client := sts.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

func (s *service) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	input := &sts.GetCallerIdentityInput{}

	return s.client.GetCallerIdentity(ctx, input)
}

// ListSubscriptions implements service.SubscriptionService.
// The credentials resolve to exactly one account, so the result is a
// singleton; asking for any other account is an authorization error.
func (s *service) ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error) {
	output, err := s.GetCallerIdentity(ctx)
	if err != nil {
		return nil, &model.PrerequisiteError{Prerequisite: "aws authentication", Err: err}
	}

	account := aws.ToString(output.Account)
	if subscriptionID != "" && subscriptionID != account {
		return nil, &model.AuthorizationError{
			SubscriptionID: subscriptionID,
			Err:            fmt.Errorf("credentials belong to account %s", account),
		}
	}
	if account == "" {
		return nil, errors.New("caller identity returned no account")
	}

	return []model.Subscription{{
		ID:    account,
		Name:  aws.ToString(output.Arn),
		State: "Enabled",
	}}, nil
}
