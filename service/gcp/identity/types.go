package gcpidentity

import (
	"context"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/cloudresourcemanager/v1"
)

type service struct {
	client *cloudresourcemanager.Service
	logger *logrus.Logger
}

type IdentityService interface {
	ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error)
	GetProjectInfo(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error)
}
