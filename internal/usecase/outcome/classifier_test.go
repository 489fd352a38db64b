//go:build unit

package outcome_test

import (
	"net/http"
	"testing"

	"roomledger/internal/pkg/errs"
	"roomledger/internal/usecase/outcome"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{name: "invalid range", err: errs.ErrInvalidRange, status: http.StatusBadRequest},
		{name: "room not found", err: errs.ErrRoomNotFound, status: http.StatusNotFound},
		{name: "booking not found", err: errs.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "invalid transition", err: errs.ErrInvalidTransition, status: http.StatusUnprocessableEntity},
		{name: "overlap conflict", err: errs.ErrOverlapConflict, status: http.StatusConflict},
		{name: "lock timeout", err: errs.ErrLockTimeout, status: http.StatusServiceUnavailable, retryable: true},
		{name: "transient store failure", err: errs.ErrTransientStoreFailure, status: http.StatusServiceUnavailable, retryable: true},
		{name: "unknown error", err: errs.New("boom"), status: http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := outcome.Classify(c.err)
			assert.Equal(t, c.status, got.Status)
			assert.Equal(t, c.retryable, got.Retryable)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassifySeesThroughWrapping(t *testing.T) {
	err := errs.Wrap(errs.Mark(errs.New("pool exhausted"), errs.ErrTransientStoreFailure), "admission failed")

	got := outcome.Classify(err)
	assert.True(t, got.Retryable)
	assert.Equal(t, http.StatusServiceUnavailable, got.Status)
}
