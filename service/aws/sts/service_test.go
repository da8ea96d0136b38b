package awssts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/elC0mpa/snapshot-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSTS struct {
	output *sts.GetCallerIdentityOutput
	err    error
}

func (f *fakeSTS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.output, f.err
}

func TestListSubscriptions(t *testing.T) {
	identity := &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/ops"),
	}
	want := []model.Subscription{{ID: "123456789012", Name: "arn:aws:iam::123456789012:user/ops", State: "Enabled"}}

	t.Run("caller account", func(t *testing.T) {
		s := &service{client: &fakeSTS{output: identity}}

		got, err := s.ListSubscriptions(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("matching account", func(t *testing.T) {
		s := &service{client: &fakeSTS{output: identity}}

		got, err := s.ListSubscriptions(context.Background(), "123456789012")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("other account", func(t *testing.T) {
		s := &service{client: &fakeSTS{output: identity}}

		_, err := s.ListSubscriptions(context.Background(), "999999999999")

		var authErr *model.AuthorizationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "999999999999", authErr.SubscriptionID)
	})

	t.Run("no credentials", func(t *testing.T) {
		s := &service{client: &fakeSTS{err: errors.New("no valid providers in chain")}}

		_, err := s.ListSubscriptions(context.Background(), "")

		var prereq *model.PrerequisiteError
		require.ErrorAs(t, err, &prereq)
	})
}
