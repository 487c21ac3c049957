package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/redist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_action",
			code:    errors.ErrInvalidAction,
			message: "action name cannot be empty",
			wantStr: "[INVALID_ACTION] action name cannot be empty",
		},
		{
			name:    "invalid_callback",
			code:    errors.ErrInvalidCallback,
			message: "callback cannot be nil",
			wantStr: "[INVALID_CALLBACK] callback cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Nil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrScriptInvalid, "step %d: unknown registry %q", 3, "a")
	assert.Equal(t, `step 3: unknown registry "a"`, err.Message)
	assert.Nil(t, err.Wrapped)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrConfigLoad, "cannot load")

		assert.Equal(t, errors.ErrConfigLoad, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[CONFIG_LOAD] cannot load: base error", err.Error())
		assert.ErrorIs(t, err, baseErr)
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrScriptParse, "cannot parse %s", "a.yaml")

		assert.Equal(t, "cannot parse a.yaml", err.Message)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScriptParse))
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidAction, "bad action").
		WithDetail("action", "").
		WithDetail("op", "subscribe")

	require.Len(t, err.Details, 2)
	assert.Equal(t, "", err.Details["action"])
	assert.Equal(t, "subscribe", err.Details["op"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrInvalidHost, "error 1")
	err2 := errors.New(errors.ErrInvalidHost, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrInvalidHost, "x"), errors.ErrInvalidHost, true},
		{"different_code", errors.New(errors.ErrInvalidHost, "x"), errors.ErrInternal, false},
		{"wrapped_error", fmt.Errorf("outer: %w", errors.New(errors.ErrScriptParse, "x")), errors.ErrScriptParse, true},
		{"outermost_code_wins", errors.Wrap(errors.New(errors.ErrConfigParse, "inner"), errors.ErrConfigLoad, "outer"), errors.ErrConfigLoad, true},
		{"plain_error", stderrors.New("plain"), errors.ErrInvalidHost, false},
		{"nil_error", nil, errors.ErrInvalidHost, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}
