package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
)

// subscriptionsClient is the part of armsubscriptions.Client the service uses
type subscriptionsClient interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
	NewListPager(options *armsubscriptions.ClientListOptions) *runtime.Pager[armsubscriptions.ClientListResponse]
}

type service struct {
	client subscriptionsClient
	logger *logrus.Logger
}

type IdentityService interface {
	ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error)
	GetSubscriptionInfo(ctx context.Context, subscriptionID string) (*armsubscriptions.Subscription, error)
}
