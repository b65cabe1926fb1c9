package cmd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klwxsrx/go-auth-session/pkg/cmd"
	"github.com/klwxsrx/go-auth-session/pkg/log"
)

func TestRun_StopsOtherJobsWhenOneCompletes(t *testing.T) {
	err := cmd.Run(context.Background(), log.New(log.LevelDisabled),
		func(context.Context) error { return nil },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)

	assert.NoError(t, err)
}

func TestRun_ReturnsJobError(t *testing.T) {
	expectedErr := errors.New("unexpected")

	err := cmd.Run(context.Background(), log.New(log.LevelDisabled),
		func(context.Context) error { return expectedErr },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)

	assert.ErrorIs(t, err, expectedErr)
}
