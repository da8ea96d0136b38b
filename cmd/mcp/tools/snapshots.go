package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elC0mpa/snapshot-doctor/cmd/mcp/response"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/classifier"
	"github.com/elC0mpa/snapshot-doctor/service/resolver"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// ProviderFactory builds the services of a cloud provider
type ProviderFactory func(ctx context.Context, provider string) (*service.Provider, error)

// ScanOptions tunes find_orphaned_snapshots
type ScanOptions struct {
	DefaultProvider     string
	DefaultSubscription func(provider string) string
	LookupRetries       uint64
	Concurrency         int
	SnapshotConcurrency int
}

// RegisterSnapshotTools registers the read-only snapshot tools. Deletion is not
// exposed over MCP.
func RegisterSnapshotTools(s *server.MCPServer, factory ProviderFactory, logger *logrus.Logger, opts ScanOptions) {
	providerArg := mcp.WithString("provider",
		mcp.Description(fmt.Sprintf("Cloud provider to scan: azure, aws or gcp (default: %s)", opts.DefaultProvider)),
		mcp.Enum("azure", "aws", "gcp"),
	)

	s.AddTool(
		mcp.NewTool("list_subscriptions",
			mcp.WithDescription("List the Azure subscriptions, AWS account or GCP projects the current credentials can scan"),
			providerArg,
		),
		makeListSubscriptionsHandler(factory, opts),
	)

	s.AddTool(
		mcp.NewTool("find_orphaned_snapshots",
			mcp.WithDescription("Find disk snapshots whose source disk no longer exists. Scans every accessible subscription unless subscription_id is given. Read-only."),
			providerArg,
			mcp.WithString("subscription_id",
				mcp.Description("Subscription ID, AWS account ID or GCP project ID to scan (default: AZURE_SUBSCRIPTION_ID / GCP_PROJECT_ID when set, otherwise all accessible)"),
			),
		),
		makeFindOrphanedSnapshotsHandler(factory, logger, opts, time.Now),
	)
}

func makeListSubscriptionsHandler(factory ProviderFactory, opts ScanOptions) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		providerName := request.GetString("provider", opts.DefaultProvider)

		cloud, err := factory(ctx, providerName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to initialise %s provider: %v", providerName, err)), nil
		}

		subscriptions, err := cloud.Subscriptions.ListSubscriptions(ctx, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertSubscriptions(cloud.Name, subscriptions), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeFindOrphanedSnapshotsHandler(factory ProviderFactory, logger *logrus.Logger, opts ScanOptions, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		providerName := request.GetString("provider", opts.DefaultProvider)
		subscriptionID := request.GetString("subscription_id", "")
		if subscriptionID == "" && opts.DefaultSubscription != nil {
			subscriptionID = opts.DefaultSubscription(providerName)
		}

		cloud, err := factory(ctx, providerName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to initialise %s provider: %v", providerName, err)), nil
		}

		subscriptions, err := cloud.Subscriptions.ListSubscriptions(ctx, subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
		}

		diskResolver, err := resolver.NewService(cloud.Disks, logger, resolver.Options{Retries: opts.LookupRetries})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create disk resolver: %v", err)), nil
		}

		classifierService := classifier.NewService(cloud.Snapshots, diskResolver, logger, classifier.Options{
			Concurrency:         opts.Concurrency,
			SnapshotConcurrency: opts.SnapshotConcurrency,
		})

		result := classifierService.Classify(ctx, subscriptions)
		if err := ctx.Err(); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan interrupted: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertScanResult(cloud.Name, result, now()), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
