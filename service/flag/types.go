package flag

import (
	"context"
	"time"

	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

const (
	envPrefix            = "SNAPSHOT_DOCTOR"
	azureSubscriptionKey = "azure-subscription-id"
)

// RunFunc receives the validated flags of a command invocation
type RunFunc func(ctx context.Context, flags model.Flags) error

type service struct {
	validate *validator.Validate
	now      func() time.Time
}

type FlagService interface {
	Command(run RunFunc) *cobra.Command
	GetParsedFlags(cmd *cobra.Command) (model.Flags, error)
}
