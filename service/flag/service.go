package flag

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func NewService() *service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report flag names instead of struct field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("mapstructure")
	})

	return &service{
		validate: validate,
		now:      time.Now,
	}
}

// Command builds the root command. run is only called with flags that passed
// validation.
func (s *service) Command(run RunFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot-doctor",
		Short: "Find and clean up orphaned disk snapshots",
		Long: `Scans every accessible subscription for disk snapshots whose source disk
no longer exists, reports them and optionally deletes them.

Deletion needs both --delete and --dry-run=false and is confirmed interactively.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags, err := s.GetParsedFlags(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), flags)
		},
	}

	s.registerFlags(cmd.Flags())
	return cmd
}

func (s *service) registerFlags(f *pflag.FlagSet) {
	defaultLogFile := fmt.Sprintf("snapshot-cleanup-%s.log", s.now().Format("20060102-150405"))

	f.StringP("subscription-id", "s", "", "Specific subscription ID to check (default: all accessible subscriptions)")
	f.Bool("delete", false, "Delete orphaned snapshots")
	f.Bool("dry-run", true, "Only report what would be deleted; pass --dry-run=false to delete")
	f.StringP("export", "e", "", "Export orphaned snapshots to a .json or .yaml file")
	f.Bool("chart", false, "Draw a size chart of orphaned snapshots per subscription")
	f.String("config", "", "Optional YAML config file")

	f.String("log-file", defaultLogFile, "Log file path")
	f.String("log-level", "INFO", "Logging level (DEBUG, INFO, WARN, ERROR)")
	f.BoolP("verbose", "v", false, "Enable verbose logging")

	f.String("provider", "azure", "Cloud provider (azure, aws, gcp)")
	f.Int("concurrency", 4, "Subscriptions scanned in parallel")
	f.Int("snapshot-concurrency", 8, "Snapshots classified in parallel per subscription")
	f.Int("lookup-retries", 3, "Retries for a failed disk lookup")
	f.Bool("fail-on-delete-error", false, "Exit with status 2 when a deletion fails")

	f.String("auth-method", "cli", "Azure authentication method (cli, managed-identity, service-principal, default)")
	f.String("sp-client-id", "", "Service principal client ID")
	f.String("sp-client-secret", "", "Service principal client secret")
	f.String("sp-tenant-id", "", "Service principal tenant ID")
	f.String("managed-identity-client-id", "", "Client ID of a user-assigned managed identity")

	f.String("region", "us-east-1", "AWS region")
	f.String("profile", "", "AWS profile configuration")
}

// GetParsedFlags merges command-line flags, SNAPSHOT_DOCTOR_* environment
// variables and the optional config file, in that order of precedence, and
// validates the result.
func (s *service) GetParsedFlags(cmd *cobra.Command) (model.Flags, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// well-known variables of the Azure tooling
	if err := v.BindEnv(azureSubscriptionKey, "AZURE_SUBSCRIPTION_ID"); err != nil {
		return model.Flags{}, err
	}
	if err := v.BindEnv("managed-identity-client-id", envPrefix+"_MANAGED_IDENTITY_CLIENT_ID", "MANAGED_IDENTITY_CLIENT_ID"); err != nil {
		return model.Flags{}, err
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return model.Flags{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return model.Flags{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var flags model.Flags
	if err := v.Unmarshal(&flags); err != nil {
		return model.Flags{}, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// AZURE_SUBSCRIPTION_ID names an Azure subscription, never an AWS account or GCP project
	if flags.SubscriptionID == "" && flags.Provider == "azure" {
		flags.SubscriptionID = v.GetString(azureSubscriptionKey)
	}

	if err := s.validate.Struct(flags); err != nil {
		return model.Flags{}, describeValidation(err)
	}

	return flags, nil
}

func describeValidation(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required", "required_if":
			messages = append(messages, fmt.Sprintf("--%s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("--%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			messages = append(messages, fmt.Sprintf("--%s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
