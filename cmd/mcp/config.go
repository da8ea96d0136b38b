package main

import (
	"context"
	"os"
	"strconv"

	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/provider"
	"github.com/sirupsen/logrus"
)

// Config holds environment-based configuration for the MCP server
type Config struct {
	Provider string

	// Azure configuration
	AzureSubscriptionID     string
	AuthMethod              string
	ManagedIdentityClientID string

	// AWS configuration
	AWSRegion  string
	AWSProfile string

	// GCP configuration
	GCPProjectID string

	LookupRetries       uint64
	Concurrency         int
	SnapshotConcurrency int
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Provider:                getEnvOrDefault("SNAPSHOT_DOCTOR_PROVIDER", provider.Azure),
		AzureSubscriptionID:     os.Getenv("AZURE_SUBSCRIPTION_ID"),
		AuthMethod:              getEnvOrDefault("SNAPSHOT_DOCTOR_AUTH_METHOD", "default"),
		ManagedIdentityClientID: os.Getenv("MANAGED_IDENTITY_CLIENT_ID"),
		AWSRegion:               getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSProfile:              os.Getenv("AWS_PROFILE"),
		GCPProjectID:            os.Getenv("GCP_PROJECT_ID"),
		LookupRetries:           uint64(getIntOrDefault("SNAPSHOT_DOCTOR_LOOKUP_RETRIES", 3)),
		Concurrency:             getIntOrDefault("SNAPSHOT_DOCTOR_CONCURRENCY", 4),
		SnapshotConcurrency:     getIntOrDefault("SNAPSHOT_DOCTOR_SNAPSHOT_CONCURRENCY", 8),
	}
}

// Settings returns the provider settings for a tool call
func (c *Config) Settings(providerName string) provider.Settings {
	if providerName == "" {
		providerName = c.Provider
	}

	return provider.Settings{
		Provider:                providerName,
		AuthMethod:              c.AuthMethod,
		ManagedIdentityClientID: c.ManagedIdentityClientID,
		Region:                  c.AWSRegion,
		Profile:                 c.AWSProfile,
	}
}

// DefaultSubscription returns the subscription or project scanned when a
// tool call names none. Empty means every accessible one.
func (c *Config) DefaultSubscription(providerName string) string {
	switch providerName {
	case provider.Azure:
		return c.AzureSubscriptionID
	case provider.GCP:
		return c.GCPProjectID
	default:
		return ""
	}
}

// ProviderFactory returns a factory that builds providers from c
func (c *Config) ProviderFactory(logger *logrus.Logger) func(ctx context.Context, providerName string) (*service.Provider, error) {
	return func(ctx context.Context, providerName string) (*service.Provider, error) {
		return provider.New(ctx, c.Settings(providerName), logger)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
