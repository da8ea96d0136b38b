package azureconfig

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

type service struct {
	authMethod string
	credential azcore.TokenCredential
	lookPath   func(file string) (string, error)
}

// AuthOptions selects how the Azure credential is built
type AuthOptions struct {
	Method                  string
	ClientID                string
	ClientSecret            string
	TenantID                string
	ManagedIdentityClientID string
}

type ConfigService interface {
	GetCredential() azcore.TokenCredential
	CheckPrerequisites(ctx context.Context) error
}
