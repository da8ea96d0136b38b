package provider

import (
	"context"
	"fmt"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	awsconfig "github.com/elC0mpa/snapshot-doctor/service/aws/config"
	awsec2 "github.com/elC0mpa/snapshot-doctor/service/aws/ec2"
	awssts "github.com/elC0mpa/snapshot-doctor/service/aws/sts"
	azurecompute "github.com/elC0mpa/snapshot-doctor/service/azure/compute"
	azureconfig "github.com/elC0mpa/snapshot-doctor/service/azure/config"
	azureidentity "github.com/elC0mpa/snapshot-doctor/service/azure/identity"
	gcpcompute "github.com/elC0mpa/snapshot-doctor/service/gcp/compute"
	gcpconfig "github.com/elC0mpa/snapshot-doctor/service/gcp/config"
	gcpidentity "github.com/elC0mpa/snapshot-doctor/service/gcp/identity"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	Azure = "azure"
	AWS   = "aws"
	GCP   = "gcp"
)

// Settings is the provider-relevant part of the run configuration
type Settings struct {
	Provider string

	AuthMethod              string
	SPClientID              string
	SPClientSecret          string
	SPTenantID              string
	ManagedIdentityClientID string

	Region  string
	Profile string
}

// SettingsFromFlags extracts provider settings from the CLI flags.
func SettingsFromFlags(flags model.Flags) Settings {
	return Settings{
		Provider:                flags.Provider,
		AuthMethod:              flags.AuthMethod,
		SPClientID:              flags.SPClientID,
		SPClientSecret:          flags.SPClientSecret,
		SPTenantID:              flags.SPTenantID,
		ManagedIdentityClientID: flags.ManagedIdentityClientID,
		Region:                  flags.Region,
		Profile:                 flags.Profile,
	}
}

// New checks the provider prerequisites and builds its services. Missing
// tooling or credentials surface as *model.PrerequisiteError.
func New(ctx context.Context, settings Settings, logger *logrus.Logger) (*service.Provider, error) {
	switch settings.Provider {
	case Azure, "":
		return newAzure(ctx, settings, logger)
	case AWS:
		return newAWS(ctx, settings)
	case GCP:
		return newGCP(ctx, logger)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", settings.Provider)
	}
}

func newAzure(ctx context.Context, settings Settings, logger *logrus.Logger) (*service.Provider, error) {
	cfgService, err := azureconfig.NewService(azureconfig.AuthOptions{
		Method:                  settings.AuthMethod,
		ClientID:                settings.SPClientID,
		ClientSecret:            settings.SPClientSecret,
		TenantID:                settings.SPTenantID,
		ManagedIdentityClientID: settings.ManagedIdentityClientID,
	})
	if err != nil {
		return nil, err
	}

	logger.Debugf("Checking Azure prerequisites for %s authentication", settings.AuthMethod)
	if err := cfgService.CheckPrerequisites(ctx); err != nil {
		return nil, err
	}

	credential := cfgService.GetCredential()

	identityService, err := azureidentity.NewService(credential, logger)
	if err != nil {
		return nil, err
	}
	computeService := azurecompute.NewService(credential)

	return &service.Provider{
		Name:          Azure,
		Subscriptions: identityService,
		Snapshots:     computeService,
		Disks:         computeService,
	}, nil
}

func newAWS(ctx context.Context, settings Settings) (*service.Provider, error) {
	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, settings.Region, settings.Profile)
	if err != nil {
		return nil, err
	}

	ec2Service := awsec2.NewService(awsCfg)

	return &service.Provider{
		Name:          AWS,
		Subscriptions: awssts.NewService(awsCfg),
		Snapshots:     ec2Service,
		Disks:         ec2Service,
	}, nil
}

func newGCP(ctx context.Context, logger *logrus.Logger) (*service.Provider, error) {
	cfgService := gcpconfig.NewService()

	creds, err := cfgService.GetCredentials(ctx)
	if err != nil {
		return nil, err
	}

	identityService, err := gcpidentity.NewService(ctx, logger, option.WithCredentials(creds))
	if err != nil {
		return nil, &model.PrerequisiteError{Prerequisite: "gcp resource manager client", Err: err}
	}

	computeService, err := gcpcompute.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, &model.PrerequisiteError{Prerequisite: "gcp compute client", Err: err}
	}

	return &service.Provider{
		Name:          GCP,
		Subscriptions: identityService,
		Snapshots:     computeService,
		Disks:         computeService,
	}, nil
}
