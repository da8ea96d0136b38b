package azureidentity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
)

func NewService(credential azcore.TokenCredential, logger *logrus.Logger) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &service{
		client: client,
		logger: logger,
	}, nil
}

// ListSubscriptions implements service.SubscriptionService
func (s *service) ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error) {
	var subscriptions []model.Subscription

	if subscriptionID != "" {
		s.logger.Infof("Using specific subscription: %s", subscriptionID)

		sub, err := s.GetSubscriptionInfo(ctx, subscriptionID)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, toSubscription(sub, subscriptionID))
	} else {
		s.logger.Info("Getting list of accessible subscriptions")

		pager := s.client.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, &model.ConnectivityError{Op: "list subscriptions", Err: err}
			}

			for _, sub := range page.Value {
				if sub == nil || sub.SubscriptionID == nil {
					continue
				}
				subscriptions = append(subscriptions, toSubscription(sub, *sub.SubscriptionID))
			}
		}
	}

	s.logger.Infof("Found %d accessible subscription(s)", len(subscriptions))
	return subscriptions, nil
}

// GetSubscriptionInfo returns detailed Azure subscription information
func (s *service) GetSubscriptionInfo(ctx context.Context, subscriptionID string) (*armsubscriptions.Subscription, error) {
	resp, err := s.client.Get(ctx, subscriptionID, nil)
	if err != nil {
		if isAccessDenied(err) {
			return nil, &model.AuthorizationError{SubscriptionID: subscriptionID, Err: err}
		}
		return nil, &model.ConnectivityError{Op: "get subscription " + subscriptionID, Err: err}
	}

	return &resp.Subscription, nil
}

func toSubscription(sub *armsubscriptions.Subscription, fallbackID string) model.Subscription {
	result := model.Subscription{
		ID:   fallbackID,
		Name: fallbackID,
	}

	if sub.SubscriptionID != nil {
		result.ID = *sub.SubscriptionID
	}
	if sub.DisplayName != nil {
		result.Name = *sub.DisplayName
	}
	if sub.State != nil {
		result.State = string(*sub.State)
	}

	return result
}

// isAccessDenied treats unauthorized, forbidden and not-found as "cannot access".
// ARM answers 404 for subscriptions the caller has no role on.
func isAccessDenied(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}

	switch respErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
