package orchestrator

import (
	"context"
	"io"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/elC0mpa/snapshot-doctor/service"
	"github.com/elC0mpa/snapshot-doctor/service/actuator"
	"github.com/elC0mpa/snapshot-doctor/service/classifier"
	"github.com/elC0mpa/snapshot-doctor/service/exporter"
	"github.com/sirupsen/logrus"
)

// ConfirmFunc asks the operator a yes/no question
type ConfirmFunc func(label string) (bool, error)

type Options struct {
	// Out receives the report; defaults to stdout
	Out     io.Writer
	Confirm ConfirmFunc
}

type orchestratorService struct {
	subscriptionService service.SubscriptionService
	classifierService   classifier.ClassifierService
	actuatorService     actuator.ActuatorService
	exporterService     exporter.ExporterService
	logger              *logrus.Logger
	out                 io.Writer
	confirm             ConfirmFunc
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
