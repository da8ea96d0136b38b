package gcpconfig

import (
	"context"

	"github.com/elC0mpa/snapshot-doctor/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudresourcemanager/v1"
	"google.golang.org/api/compute/v1"
)

func NewService() *service {
	return &service{}
}

// GetCredentials resolves Application Default Credentials once per run:
// GOOGLE_APPLICATION_CREDENTIALS, gcloud application-default login or the
// metadata server.
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	if s.credentials != nil {
		return s.credentials, nil
	}

	creds, err := google.FindDefaultCredentials(ctx,
		compute.ComputeScope,
		cloudresourcemanager.CloudPlatformReadOnlyScope,
	)
	if err != nil {
		return nil, &model.PrerequisiteError{Prerequisite: "gcp application default credentials", Err: err}
	}

	s.credentials = creds
	return creds, nil
}
