package azureconfig

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/elC0mpa/snapshot-doctor/model"
)

const (
	AuthCLI              = "cli"
	AuthManagedIdentity  = "managed-identity"
	AuthServicePrincipal = "service-principal"
	AuthDefault          = "default"

	managementScope = "https://management.azure.com/.default"
)

func NewService(opts AuthOptions) (*service, error) {
	credential, err := newCredential(opts)
	if err != nil {
		return nil, &model.PrerequisiteError{Prerequisite: "azure credential", Err: err}
	}

	return &service{
		authMethod: opts.Method,
		credential: credential,
		lookPath:   exec.LookPath,
	}, nil
}

func newCredential(opts AuthOptions) (azcore.TokenCredential, error) {
	switch opts.Method {
	case AuthCLI, "":
		return azidentity.NewAzureCLICredential(nil)
	case AuthManagedIdentity:
		var miOpts *azidentity.ManagedIdentityCredentialOptions
		if opts.ManagedIdentityClientID != "" {
			miOpts = &azidentity.ManagedIdentityCredentialOptions{
				ID: azidentity.ClientID(opts.ManagedIdentityClientID),
			}
		}
		return azidentity.NewManagedIdentityCredential(miOpts)
	case AuthServicePrincipal:
		if opts.ClientID == "" || opts.ClientSecret == "" || opts.TenantID == "" {
			return nil, errors.New("service principal authentication requires client ID, client secret, and tenant ID")
		}
		return azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
	case AuthDefault:
		// Environment, workload identity, managed identity, Azure CLI, ...
		return azidentity.NewDefaultAzureCredential(nil)
	default:
		return nil, fmt.Errorf("unsupported authentication method: %s", opts.Method)
	}
}

func (s *service) GetCredential() azcore.TokenCredential {
	return s.credential
}

// CheckPrerequisites verifies the Azure CLI is installed when it backs the
// credential and that a management-plane token can be acquired.
func (s *service) CheckPrerequisites(ctx context.Context) error {
	if s.authMethod == AuthCLI || s.authMethod == "" {
		if _, err := s.lookPath("az"); err != nil {
			return &model.PrerequisiteError{Prerequisite: "azure cli (az)", Err: err}
		}
	}

	tokenCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.credential.GetToken(tokenCtx, policy.TokenRequestOptions{
		Scopes: []string{managementScope},
	})
	if err != nil {
		return &model.PrerequisiteError{Prerequisite: "azure authentication", Err: err}
	}

	return nil
}
