package mobileconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(runner)

	err := client.Install(context.Background(), "/tmp/test.mobileconfig")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{profilesPath, "-I", "-F", "/tmp/test.mobileconfig"}, runner.calls[0])
}

func TestInstallFailure(t *testing.T) {
	runner := &fakeRunner{status: 1}
	client := NewClient(runner)

	err := client.Install(context.Background(), "/tmp/test.mobileconfig")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "/tmp/test.mobileconfig", execErr.Subject)
	assert.Contains(t, err.Error(), "/tmp/test.mobileconfig")
	assert.Contains(t, err.Error(), "status 1")
}

func TestRemove(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(runner)

	err := client.Remove(context.Background(), "com.example.test")
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{profilesPath, "-R", "-p", "com.example.test"}, runner.calls[0])
}

func TestRemoveFailure(t *testing.T) {
	runner := &fakeRunner{status: 1}
	client := NewClient(runner)

	err := client.Remove(context.Background(), "com.example.test")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "com.example.test", execErr.Subject)
	assert.Contains(t, err.Error(), "com.example.test")
}
