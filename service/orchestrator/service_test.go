package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptions struct {
	subscriptions []model.Subscription
	err           error
	requested     string
}

func (f *fakeSubscriptions) ListSubscriptions(_ context.Context, subscriptionID string) ([]model.Subscription, error) {
	f.requested = subscriptionID
	return f.subscriptions, f.err
}

type fakeClassifier struct {
	result model.ScanResult
	called bool
}

func (f *fakeClassifier) Classify(_ context.Context, _ []model.Subscription) model.ScanResult {
	f.called = true
	return f.result
}

type fakeActuator struct {
	outcome model.DeletionOutcome
	calls   int
	dryRun  bool
}

func (f *fakeActuator) Delete(_ context.Context, orphans []model.OrphanedSnapshot, dryRun bool) model.DeletionOutcome {
	f.calls++
	f.dryRun = dryRun
	if f.outcome.Successful == 0 && f.outcome.Failed == 0 {
		return model.DeletionOutcome{Successful: len(orphans)}
	}
	return f.outcome
}

type fakeExporter struct {
	path string
	err  error
}

func (f *fakeExporter) Export(_ []model.OrphanedSnapshot, path string) error {
	f.path = path
	return f.err
}

type harness struct {
	subscriptions *fakeSubscriptions
	classifier    *fakeClassifier
	actuator      *fakeActuator
	exporter      *fakeExporter
	out           *bytes.Buffer
	hook          *test.Hook
	prompts       []string
	answer        bool
	svc           *orchestratorService
}

func newHarness(orphans ...model.OrphanedSnapshot) *harness {
	logger, hook := test.NewNullLogger()
	h := &harness{
		subscriptions: &fakeSubscriptions{subscriptions: []model.Subscription{{ID: "sub-1", Name: "Prod"}}},
		classifier:    &fakeClassifier{result: model.ScanResult{Orphans: orphans, SubscriptionsScanned: 1}},
		actuator:      &fakeActuator{},
		exporter:      &fakeExporter{},
		out:           &bytes.Buffer{},
		hook:          hook,
	}
	h.svc = NewService(h.subscriptions, h.classifier, h.actuator, h.exporter, logger, Options{
		Out: h.out,
		Confirm: func(label string) (bool, error) {
			h.prompts = append(h.prompts, label)
			return h.answer, nil
		},
	})
	return h
}

func (h *harness) logged(message string) bool {
	for _, entry := range h.hook.AllEntries() {
		if entry.Message == message {
			return true
		}
	}
	return false
}

func sampleOrphan(name string) model.OrphanedSnapshot {
	return model.OrphanedSnapshot{
		SubscriptionID:   "sub-1",
		SubscriptionName: "Prod",
		ResourceGroup:    "rg-a",
		Name:             name,
		ID:               "id-" + name,
		SizeGB:           10,
		Status:           model.DiskMissing,
	}
}

func defaultFlags() model.Flags {
	return model.Flags{Provider: "azure", DryRun: true}
}

func TestOrchestrateReportOnly(t *testing.T) {
	h := newHarness(sampleOrphan("s1"))
	flags := defaultFlags()
	flags.SubscriptionID = "sub-1"

	require.NoError(t, h.svc.Orchestrate(context.Background(), flags))

	assert.Equal(t, "sub-1", h.subscriptions.requested)
	assert.Contains(t, h.out.String(), "=== Orphaned Snapshots Summary ===")
	assert.Contains(t, h.out.String(), "  - Prod: 1 snapshots, 10 GB")
	assert.NotContains(t, h.out.String(), "=== Deletion Results ===")
	assert.Zero(t, h.actuator.calls)
	assert.Empty(t, h.exporter.path)
}

func TestOrchestrateNoOrphans(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.svc.Orchestrate(context.Background(), defaultFlags()))

	assert.True(t, h.logged("No orphaned snapshots found"))
	assert.NotContains(t, h.out.String(), "Summary")
}

func TestOrchestrateEnumerationFailureIsFatal(t *testing.T) {
	h := newHarness()
	authErr := &model.AuthorizationError{SubscriptionID: "sub-x", Err: errors.New("forbidden")}
	h.subscriptions.err = authErr

	err := h.svc.Orchestrate(context.Background(), defaultFlags())

	assert.ErrorIs(t, err, authErr)
	assert.False(t, h.classifier.called)
}

func TestOrchestrateExportFailureIsNotFatal(t *testing.T) {
	h := newHarness(sampleOrphan("s1"))
	h.exporter.err = errors.New("disk full")
	flags := defaultFlags()
	flags.Export = "out.json"

	require.NoError(t, h.svc.Orchestrate(context.Background(), flags))
	assert.Equal(t, "out.json", h.exporter.path)
}

func TestOrchestrateDryRunDeletion(t *testing.T) {
	h := newHarness(sampleOrphan("s1"), sampleOrphan("s2"))
	flags := defaultFlags()
	flags.Delete = true

	require.NoError(t, h.svc.Orchestrate(context.Background(), flags))

	assert.Empty(t, h.prompts, "dry run never prompts")
	assert.Equal(t, 1, h.actuator.calls)
	assert.True(t, h.actuator.dryRun)
	assert.Contains(t, h.out.String(), "=== Deletion Results ===\nSuccessful: 2\nFailed: 0\n")
}

func TestOrchestrateLiveDeletionConfirmed(t *testing.T) {
	h := newHarness(sampleOrphan("s1"))
	h.answer = true
	flags := defaultFlags()
	flags.Delete = true
	flags.DryRun = false

	require.NoError(t, h.svc.Orchestrate(context.Background(), flags))

	require.Len(t, h.prompts, 1)
	assert.Contains(t, h.prompts[0], "delete 1 orphaned snapshots")
	assert.False(t, h.actuator.dryRun)
}

func TestOrchestrateLiveDeletionDeclined(t *testing.T) {
	h := newHarness(sampleOrphan("s1"))
	flags := defaultFlags()
	flags.Delete = true
	flags.DryRun = false

	require.NoError(t, h.svc.Orchestrate(context.Background(), flags))

	assert.Zero(t, h.actuator.calls)
	assert.True(t, h.logged("Deletion cancelled"))
}

func TestOrchestrateDeletionFailures(t *testing.T) {
	failed := model.DeletionOutcome{
		Successful: 1,
		Failed:     1,
		Failures:   []model.DeletionFailure{{SnapshotID: "id-s2", Err: errors.New("locked")}},
	}
	flags := defaultFlags()
	flags.Delete = true
	flags.DryRun = false

	h := newHarness(sampleOrphan("s1"), sampleOrphan("s2"))
	h.answer = true
	h.actuator.outcome = failed
	require.NoError(t, h.svc.Orchestrate(context.Background(), flags), "failures only fail the run when opted in")

	h = newHarness(sampleOrphan("s1"), sampleOrphan("s2"))
	h.answer = true
	h.actuator.outcome = failed
	flags.FailOnDeleteError = true
	err := h.svc.Orchestrate(context.Background(), flags)
	assert.ErrorIs(t, err, model.ErrDeletionFailures)
}

func TestOrchestrateCancelled(t *testing.T) {
	h := newHarness(sampleOrphan("s1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.svc.Orchestrate(ctx, defaultFlags())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.out.String())
}

func TestLogsToConsoleFollowsLevel(t *testing.T) {
	tests := []struct {
		level logrus.Level
		want  bool
	}{
		{logrus.DebugLevel, true},
		{logrus.InfoLevel, true},
		{logrus.WarnLevel, false},
		{logrus.ErrorLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			h := newHarness()
			h.svc.logger.SetLevel(tt.level)
			assert.Equal(t, tt.want, h.svc.logsToConsole())
		})
	}
}

func TestOrchestrateLogsScanTotals(t *testing.T) {
	h := newHarness(sampleOrphan("s1"), sampleOrphan("s2"))

	require.NoError(t, h.svc.Orchestrate(context.Background(), defaultFlags()))

	var found bool
	for _, entry := range h.hook.AllEntries() {
		if entry.Message == "Scan complete" {
			found = true
			assert.Equal(t, 2, entry.Data["orphans"])
			assert.Equal(t, int64(20), entry.Data["orphanedGB"])
		}
	}
	assert.True(t, found)
}
