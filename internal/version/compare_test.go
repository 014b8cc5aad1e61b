package version

import (
	"testing"

	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		engine        string
		constraint    string
		expectCode    errors.ErrorCode
		errorContains string
	}{
		{name: "empty constraint", engine: "1.2.0", constraint: ""},
		{name: "blank constraint", engine: "not-a-version", constraint: "   "},
		{name: "caret match", engine: "1.2.0", constraint: "^1.0"},
		{name: "v prefix on engine", engine: "v1.4.3", constraint: "^1.0"},
		{name: "range match", engine: "1.5.0", constraint: ">= 1.2, < 2"},
		{name: "tilde patch match", engine: "1.2.9", constraint: "~1.2.0"},
		{name: "engine is main", engine: "main", constraint: ">= 9"},
		{
			name:          "major mismatch",
			engine:        "2.0.0",
			constraint:    "^1.0",
			expectCode:    errors.ErrCodeVersionMismatch,
			errorContains: "does not satisfy ^1.0",
		},
		{
			name:       "tilde minor mismatch",
			engine:     "1.3.0",
			constraint: "~1.2.0",
			expectCode: errors.ErrCodeVersionMismatch,
		},
		{
			name:          "invalid engine",
			engine:        "not-a-version",
			constraint:    "^1.0",
			expectCode:    errors.ErrCodeInvalidVersion,
			errorContains: "invalid engine version",
		},
		{
			name:          "invalid constraint",
			engine:        "1.0.0",
			constraint:    "latest please",
			expectCode:    errors.ErrCodeInvalidVersion,
			errorContains: "invalid version constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.engine, tt.constraint)

			if tt.expectCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.expectCode, errors.GetCode(err))
			if tt.errorContains != "" {
				assert.Contains(t, err.Error(), tt.errorContains)
			}
		})
	}
}

func TestCheckCurrent(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "v1.0.0"
	assert.NoError(t, CheckCurrent("^1"))
	assert.Error(t, CheckCurrent("^2"))

	Version = "main"
	assert.NoError(t, CheckCurrent("^2"))
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}
