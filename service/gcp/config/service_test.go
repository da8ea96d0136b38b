package gcpconfig

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/google"
)

func TestGetCredentialsMissingIsPrerequisiteError(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

	_, err := NewService().GetCredentials(context.Background())

	var prereq *model.PrerequisiteError
	require.ErrorAs(t, err, &prereq)
	assert.Equal(t, "gcp application default credentials", prereq.Prerequisite)
}

func TestGetCredentialsResolvedOnce(t *testing.T) {
	cached := &google.Credentials{ProjectID: "my-project"}
	s := NewService()
	s.credentials = cached
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

	creds, err := s.GetCredentials(context.Background())
	require.NoError(t, err)
	assert.Same(t, cached, creds)
}
