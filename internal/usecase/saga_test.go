package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fad/pkg/errors"
)

func TestSagaRunsStepsInOrder(t *testing.T) {
	var trace []string
	step := func(name string) func(context.Context) error {
		return func(context.Context) error {
			trace = append(trace, name)
			return nil
		}
	}

	err := NewSaga("ok").
		Step("a", step("a"), nil).
		Step("b", step("b"), nil).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, trace)
}

func TestSagaCompensatesCompletedStepsInReverse(t *testing.T) {
	var trace []string
	boom := stderrors.New("boom")

	err := NewSaga("chain").
		Step("a", func(context.Context) error { trace = append(trace, "run a"); return nil },
			func(context.Context) error { trace = append(trace, "undo a"); return nil }).
		Step("b", func(context.Context) error { trace = append(trace, "run b"); return nil },
			func(context.Context) error { trace = append(trace, "undo b"); return nil }).
		Step("c", func(context.Context) error { return boom },
			func(context.Context) error { trace = append(trace, "undo c"); return nil }).
		Execute(context.Background())

	var sagaErr *SagaError
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, "c", sagaErr.FailedStep)
	assert.Equal(t, []string{"a", "b"}, sagaErr.CompletedSteps)
	assert.True(t, sagaErr.RolledBack())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"run a", "run b", "undo b", "undo a"}, trace)
}

func TestSagaCollectsCompensationErrors(t *testing.T) {
	err := NewSaga("chain").
		Step("a", func(context.Context) error { return nil },
			func(context.Context) error { return stderrors.New("cannot undo") }).
		Step("b", func(context.Context) error { return stderrors.New("boom") }, nil).
		Execute(context.Background())

	var sagaErr *SagaError
	require.ErrorAs(t, err, &sagaErr)
	assert.False(t, sagaErr.RolledBack())
	assert.Len(t, sagaErr.CompensationErrors, 1)
}

func TestSagaFailureMapping(t *testing.T) {
	t.Run("client error with clean rollback passes through", func(t *testing.T) {
		err := sagaFailure(&SagaError{
			Saga:       "register",
			FailedStep: "create_auth_user",
			Err:        errors.BadRequest("Failed to create account", nil),
		})
		assert.True(t, errors.Is(err, errors.CodeBadRequest))
	})

	t.Run("gateway error becomes a partial failure", func(t *testing.T) {
		err := sagaFailure(&SagaError{
			Saga:       "launch_campaign",
			FailedStep: "create_campaign",
			Err:        stderrors.New("unavailable"),
		})
		require.True(t, errors.Is(err, errors.CodePartialFailure))

		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		details := appErr.Details.(map[string]interface{})
		assert.Equal(t, "create_campaign", details["failed_step"])
		assert.Equal(t, true, details["rolled_back"])
	})

	t.Run("client error with failed rollback is a partial failure", func(t *testing.T) {
		err := sagaFailure(&SagaError{
			Saga:               "onboard",
			FailedStep:         "ensure_vendor",
			Err:                errors.Conflict("Vendor already exists"),
			CompensationErrors: []error{stderrors.New("delete failed")},
		})
		assert.True(t, errors.Is(err, errors.CodePartialFailure))
	})

	t.Run("plain errors are returned unchanged", func(t *testing.T) {
		plain := stderrors.New("plain")
		assert.Equal(t, plain, sagaFailure(plain))
	})
}
