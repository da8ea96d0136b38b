package gcpidentity

import (
	"context"
	"errors"
	"net/http"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const activeProjects = "lifecycleState:ACTIVE"

func NewService(ctx context.Context, logger *logrus.Logger, opts ...option.ClientOption) (*service, error) {
	client, err := cloudresourcemanager.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &service{
		client: client,
		logger: logger,
	}, nil
}

// ListSubscriptions implements service.SubscriptionService; GCP projects play
// the role of subscriptions.
func (s *service) ListSubscriptions(ctx context.Context, subscriptionID string) ([]model.Subscription, error) {
	var projects []model.Subscription

	if subscriptionID != "" {
		s.logger.Infof("Using specific project: %s", subscriptionID)

		project, err := s.GetProjectInfo(ctx, subscriptionID)
		if err != nil {
			if isAccessDenied(err) {
				return nil, &model.AuthorizationError{SubscriptionID: subscriptionID, Err: err}
			}
			return nil, &model.ConnectivityError{Op: "get project " + subscriptionID, Err: err}
		}
		projects = append(projects, toSubscription(project))
	} else {
		s.logger.Info("Getting list of accessible projects")

		err := s.client.Projects.List().Filter(activeProjects).Pages(ctx, func(page *cloudresourcemanager.ListProjectsResponse) error {
			for _, project := range page.Projects {
				projects = append(projects, toSubscription(project))
			}
			return nil
		})
		if err != nil {
			return nil, &model.ConnectivityError{Op: "list projects", Err: err}
		}
	}

	s.logger.Infof("Found %d accessible project(s)", len(projects))
	return projects, nil
}

// GetProjectInfo returns detailed GCP project information
func (s *service) GetProjectInfo(ctx context.Context, projectID string) (*cloudresourcemanager.Project, error) {
	return s.client.Projects.Get(projectID).Context(ctx).Do()
}

func toSubscription(project *cloudresourcemanager.Project) model.Subscription {
	name := project.Name
	if name == "" {
		name = project.ProjectId
	}
	return model.Subscription{
		ID:    project.ProjectId,
		Name:  name,
		State: project.LifecycleState,
	}
}

func isAccessDenied(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusForbidden || apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusUnauthorized
}
