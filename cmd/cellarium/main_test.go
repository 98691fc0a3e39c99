package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsBadCommands(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
	}{
		{nil, "missing command"},
		{[]string{"frobnicate"}, `unknown command "frobnicate"`},
		{[]string{"migrate"}, "expected up, down or version"},
		{[]string{"migrate", "sideways"}, "expected up, down or version"},
	}
	for _, tt := range tests {
		err := run(context.Background(), tt.args)
		require.Error(t, err, tt.args)
		assert.Contains(t, err.Error(), tt.msg)
	}
}

func TestServeRequiresSecret(t *testing.T) {
	t.Setenv("CELLARIUM_AUTH_SECRET", "")

	err := run(context.Background(), []string{"serve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.secret")
}

func TestRunMissingConfigFile(t *testing.T) {
	err := run(context.Background(), []string{"--config", "/does/not/exist.yaml", "serve"})
	assert.Error(t, err)
}
