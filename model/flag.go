package model

type Flags struct {
	// Common flags
	Provider       string `mapstructure:"provider" validate:"required,oneof=azure aws gcp"`
	SubscriptionID string `mapstructure:"subscription-id"`
	Delete         bool   `mapstructure:"delete"`
	DryRun         bool   `mapstructure:"dry-run"`
	Export         string `mapstructure:"export"`
	Chart          bool   `mapstructure:"chart"`
	Config         string `mapstructure:"config"`

	// Logging flags
	LogFile  string `mapstructure:"log-file"`
	LogLevel string `mapstructure:"log-level" validate:"required,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
	Verbose  bool   `mapstructure:"verbose"`

	// Pipeline tuning
	Concurrency         int  `mapstructure:"concurrency" validate:"min=1,max=64"`
	SnapshotConcurrency int  `mapstructure:"snapshot-concurrency" validate:"min=1,max=64"`
	LookupRetries       int  `mapstructure:"lookup-retries" validate:"min=0,max=10"`
	FailOnDeleteError   bool `mapstructure:"fail-on-delete-error"`

	// Azure-specific flags
	AuthMethod              string `mapstructure:"auth-method" validate:"required,oneof=cli managed-identity service-principal default"`
	SPClientID              string `mapstructure:"sp-client-id" validate:"required_if=AuthMethod service-principal"`
	SPClientSecret          string `mapstructure:"sp-client-secret" validate:"required_if=AuthMethod service-principal"`
	SPTenantID              string `mapstructure:"sp-tenant-id" validate:"required_if=AuthMethod service-principal"`
	ManagedIdentityClientID string `mapstructure:"managed-identity-client-id"`

	// AWS-specific flags
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// LiveDelete reports whether snapshots will really be removed.
// Both --delete and --dry-run=false are needed.
func (f Flags) LiveDelete() bool {
	return f.Delete && !f.DryRun
}
