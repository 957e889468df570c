package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateResult(t *testing.T) {
	tests := []struct {
		name           string
		initialResult  ValidationResult
		update         ValidationResult
		expectedResult ValidationResult
	}{
		{
			name:           "success from skipped",
			initialResult:  ValidationSkipped,
			update:         ValidationSucceeded,
			expectedResult: ValidationSucceeded,
		},
		{
			name:           "warning overrides success",
			initialResult:  ValidationSucceeded,
			update:         ValidationWarned,
			expectedResult: ValidationWarned,
		},
		{
			name:           "failure overrides warning",
			initialResult:  ValidationWarned,
			update:         ValidationFailed,
			expectedResult: ValidationFailed,
		},
		{
			name:           "success does not override failure",
			initialResult:  ValidationFailed,
			update:         ValidationSucceeded,
			expectedResult: ValidationFailed,
		},
		{
			name:           "execution error overrides everything",
			initialResult:  ValidationFailed,
			update:         ExecutionError,
			expectedResult: ExecutionError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Result = tt.initialResult
			t.Cleanup(func() { Result = ValidationSkipped })

			UpdateResult(tt.update)

			assert.Equal(t, tt.expectedResult, Result)
		})
	}
}

func TestParseCheckNameList(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		m, err := parseCheckNameList("")
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("valid names", func(t *testing.T) {
		m, err := parseCheckNameList("ssl, windows,vsphere")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"ssl": true, "windows": true, "vsphere": true}, m)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := parseCheckNameList("ssl,bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown check name "bogus"`)
	})
}
