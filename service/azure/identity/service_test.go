package azureidentity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptions struct {
	get     map[string]armsubscriptions.Subscription
	getErr  error
	list    []*armsubscriptions.Subscription
	listErr error
}

func (f *fakeSubscriptions) Get(_ context.Context, subscriptionID string, _ *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error) {
	if f.getErr != nil {
		return armsubscriptions.ClientGetResponse{}, f.getErr
	}
	return armsubscriptions.ClientGetResponse{Subscription: f.get[subscriptionID]}, nil
}

func (f *fakeSubscriptions) NewListPager(_ *armsubscriptions.ClientListOptions) *runtime.Pager[armsubscriptions.ClientListResponse] {
	done := false
	return runtime.NewPager(runtime.PagingHandler[armsubscriptions.ClientListResponse]{
		More: func(_ armsubscriptions.ClientListResponse) bool { return !done },
		Fetcher: func(_ context.Context, _ *armsubscriptions.ClientListResponse) (armsubscriptions.ClientListResponse, error) {
			done = true
			if f.listErr != nil {
				return armsubscriptions.ClientListResponse{}, f.listErr
			}
			return armsubscriptions.ClientListResponse{
				SubscriptionListResult: armsubscriptions.SubscriptionListResult{Value: f.list},
			}, nil
		},
	})
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestListSubscriptionsAll(t *testing.T) {
	state := armsubscriptions.SubscriptionStateEnabled
	client := &fakeSubscriptions{list: []*armsubscriptions.Subscription{
		{SubscriptionID: to.Ptr("sub-1"), DisplayName: to.Ptr("Prod"), State: &state},
		{SubscriptionID: to.Ptr("sub-2")},
		{DisplayName: to.Ptr("no id")},
	}}
	s := &service{client: client, logger: quietLogger()}

	got, err := s.ListSubscriptions(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []model.Subscription{
		{ID: "sub-1", Name: "Prod", State: "Enabled"},
		{ID: "sub-2", Name: "sub-2"},
	}, got)
}

func TestListSubscriptionsSpecific(t *testing.T) {
	client := &fakeSubscriptions{get: map[string]armsubscriptions.Subscription{
		"sub-1": {SubscriptionID: to.Ptr("sub-1"), DisplayName: to.Ptr("Prod")},
	}}
	s := &service{client: client, logger: quietLogger()}

	got, err := s.ListSubscriptions(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, []model.Subscription{{ID: "sub-1", Name: "Prod"}}, got)
}

func TestListSubscriptionsErrors(t *testing.T) {
	t.Run("inaccessible subscription", func(t *testing.T) {
		client := &fakeSubscriptions{getErr: &azcore.ResponseError{StatusCode: http.StatusForbidden}}
		s := &service{client: client, logger: quietLogger()}

		_, err := s.ListSubscriptions(context.Background(), "sub-x")

		var authErr *model.AuthorizationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "sub-x", authErr.SubscriptionID)
	})

	t.Run("lookup failure", func(t *testing.T) {
		client := &fakeSubscriptions{getErr: errors.New("dial tcp: timeout")}
		s := &service{client: client, logger: quietLogger()}

		_, err := s.ListSubscriptions(context.Background(), "sub-x")

		var connErr *model.ConnectivityError
		require.ErrorAs(t, err, &connErr)
	})

	t.Run("listing failure", func(t *testing.T) {
		client := &fakeSubscriptions{listErr: errors.New("dial tcp: timeout")}
		s := &service{client: client, logger: quietLogger()}

		_, err := s.ListSubscriptions(context.Background(), "")

		var connErr *model.ConnectivityError
		require.ErrorAs(t, err, &connErr)
	})
}
