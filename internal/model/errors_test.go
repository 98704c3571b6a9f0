package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prx-network/relayleaf/internal/model"
)

func TestDescribe(t *testing.T) {
	tests := map[string]struct {
		code    model.Code
		expKind error
	}{
		"Code 0 should be success.": {
			code:    model.CodeOK,
			expKind: nil,
		},
		"Code 1 should map to null parameter.": {
			code:    model.CodeNullParam,
			expKind: model.ErrNullParam,
		},
		"Code 2 should map to invalid handle.": {
			code:    model.CodeInvalidHandle,
			expKind: model.ErrInvalidHandle,
		},
		"Code 3 should map to create failed.": {
			code:    model.CodeCreateFailed,
			expKind: model.ErrCreateFailed,
		},
		"Code 4 should map to start failed.": {
			code:    model.CodeStartFailed,
			expKind: model.ErrStartFailed,
		},
		"Code 5 should map to already started.": {
			code:    model.CodeAlreadyStarted,
			expKind: model.ErrAlreadyStarted,
		},
		"Code 6 should map to not started.": {
			code:    model.CodeNotStarted,
			expKind: model.ErrNotStarted,
		},
		"Code 7 should map to invalid proxy.": {
			code:    model.CodeInvalidProxy,
			expKind: model.ErrInvalidProxy,
		},
		"Code 99 should map to internal.": {
			code:    model.CodeInternal,
			expKind: model.ErrInternal,
		},
		"An undocumented code should map to unknown.": {
			code:    model.Code(42),
			expKind: model.ErrUnknown,
		},
		"A negative code should map to unknown.": {
			code:    model.Code(-1),
			expKind: model.ErrUnknown,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := model.Describe(test.code)

			if test.expKind == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, test.expKind)

			// The original numeric code must survive translation.
			var codeErr *model.CodeError
			require.ErrorAs(t, err, &codeErr)
			assert.Equal(t, test.code, codeErr.Code)
		})
	}
}

func TestDescribeKindsAreDistinct(t *testing.T) {
	codes := []model.Code{1, 2, 3, 4, 5, 6, 7, 99}

	seen := map[error]model.Code{}
	for _, code := range codes {
		err := model.Describe(code)
		require.Error(t, err)

		kind := errors.Unwrap(err)
		require.NotNil(t, kind)

		prev, ok := seen[kind]
		assert.False(t, ok, "codes %d and %d map to the same kind", prev, code)
		seen[kind] = code
	}
}

func TestText(t *testing.T) {
	tests := map[string]struct {
		code    model.Code
		expText string
	}{
		"OK has text.": {
			code:    model.CodeOK,
			expText: "ok",
		},
		"Invalid proxy has text.": {
			code:    model.CodeInvalidProxy,
			expText: "invalid proxy URL",
		},
		"Internal has text.": {
			code:    model.CodeInternal,
			expText: "internal engine error",
		},
		"Unknown codes carry the raw code.": {
			code:    model.Code(1234),
			expText: "unknown error code 1234",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expText, model.Text(test.code))
		})
	}
}
