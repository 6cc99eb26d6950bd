package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailErrorFormat(t *testing.T) {
	err := &DetailError{
		Type:     "render failed",
		Message:  "variable \"rdbms\" is not defined for this request",
		Location: "infra/storage/order-db/storage.yaml",
		Hint:     "Check the bundle's applicability predicate.",
		Cause:    ErrRender,
	}

	msg := err.Error()
	assert.Contains(t, msg, "Error: render failed")
	assert.Contains(t, msg, "Location: infra/storage/order-db/storage.yaml")
	assert.Contains(t, msg, "variable \"rdbms\"")
	assert.Contains(t, msg, "Hint: Check the bundle's")
}

func TestDetailErrorUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"build error", NewBuildError("missing database name", "database_name"), ErrBuild},
		{"render error", NewRenderError("missing variable", "a/b.yaml"), ErrRender},
		{"io error", NewIOError("disk full", "a/b.yaml", "free disk space and re-run", errors.New("ENOSPC")), ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrValidation, "name rejected")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "name rejected: validation error", err.Error())
}
