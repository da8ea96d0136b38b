package azureconfig

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredential struct {
	err    error
	scopes []string
}

func (f *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	return azcore.AccessToken{Token: "token"}, f.err
}

func TestNewServiceServicePrincipalRequiresAllFields(t *testing.T) {
	_, err := NewService(AuthOptions{Method: AuthServicePrincipal, ClientID: "id"})

	var prereq *model.PrerequisiteError
	require.ErrorAs(t, err, &prereq)
}

func TestNewServiceUnknownMethod(t *testing.T) {
	_, err := NewService(AuthOptions{Method: "kerberos"})
	assert.Error(t, err)
}

func TestCheckPrerequisites(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/az", nil }
	missing := func(string) (string, error) { return "", errors.New("executable file not found in $PATH") }

	tests := []struct {
		name       string
		method     string
		lookPath   func(string) (string, error)
		tokenErr   error
		wantErr    bool
		wantPrereq string
	}{
		{name: "cli ready", method: AuthCLI, lookPath: found},
		{name: "cli missing", method: AuthCLI, lookPath: missing, wantErr: true, wantPrereq: "azure cli (az)"},
		{name: "token failure", method: AuthCLI, lookPath: found, tokenErr: errors.New("not logged in"), wantErr: true, wantPrereq: "azure authentication"},
		{name: "managed identity skips cli check", method: AuthManagedIdentity, lookPath: missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := &fakeCredential{err: tt.tokenErr}
			s := &service{authMethod: tt.method, credential: cred, lookPath: tt.lookPath}

			err := s.CheckPrerequisites(context.Background())
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, []string{managementScope}, cred.scopes)
				return
			}

			var prereq *model.PrerequisiteError
			require.ErrorAs(t, err, &prereq)
			assert.Equal(t, tt.wantPrereq, prereq.Prerequisite)
		})
	}
}
