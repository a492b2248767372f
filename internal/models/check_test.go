package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCheckStatus(t *testing.T) {
	tests := []struct {
		in   string
		want CheckStatus
	}{
		{"pass", StatusPass},
		{"warn", StatusWarn},
		{"fail", StatusFail},
		{"", StatusFail},
		{"PASS", StatusFail},
		{" pass", StatusFail},
		{"skipped", StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCheckStatus(tt.in))
		})
	}
}

func TestCheckStatus_Multiplier(t *testing.T) {
	assert.Equal(t, 1.0, StatusPass.Multiplier())
	assert.Equal(t, 0.5, StatusWarn.Multiplier())
	assert.Equal(t, 0.0, StatusFail.Multiplier())
	assert.Equal(t, 0.0, CheckStatus("bogus").Multiplier())
}

func TestCheckStatus_NeedsAttention(t *testing.T) {
	assert.False(t, StatusPass.NeedsAttention())
	assert.True(t, StatusWarn.NeedsAttention())
	assert.True(t, StatusFail.NeedsAttention())
}

func TestCheckResult_UnknownStatusDecodesAsFail(t *testing.T) {
	var fromJSON CheckResult
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","status":"Warn","weight":1}`), &fromJSON))
	assert.Equal(t, StatusFail, fromJSON.Status)

	var fromYAML CheckResult
	require.NoError(t, yaml.Unmarshal([]byte("id: a\nstatus: warn\nweight: 1\n"), &fromYAML))
	assert.Equal(t, StatusWarn, fromYAML.Status)
}
