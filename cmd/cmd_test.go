// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fleet-readiness/internal/config"
	"fleet-readiness/internal/fleet"
	"fleet-readiness/internal/probe"
	"fleet-readiness/internal/readiness"
	"fleet-readiness/internal/test"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"os"
	"strings"
	"testing"
	"time"
)

const hostsTable = `prefix,slesVersion,spVersion,suffix
vmhana,15,5,rpm
vmhana,15,6,rpm
vmhana,16,0,rpm
vmhana,15,6,suse
`

const testConfig = `logLevel: error
retry:
  maxRetries: 3
  initialDelay: 1ms
metrics:
  enabled: false
`

func setupCommand(t *testing.T, executor probe.Executor) *bytes.Buffer {
	t.Helper()

	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("hosts.csv", []byte(hostsTable), 0o600))
	require.NoError(t, os.WriteFile("config.yml", []byte(testConfig), 0o600))

	viper.Reset()
	configFile = ""
	rootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})

	originalDirect, originalSleep := directExecutorFunc, sleepFunc
	directExecutorFunc = func(config.Configuration) probe.Executor {
		return executor
	}
	sleepFunc = new(test.SleepRecorder).Sleep
	t.Cleanup(func() {
		directExecutorFunc, sleepFunc = originalDirect, originalSleep
		viper.Reset()
	})

	output := new(bytes.Buffer)
	rootCmd.SetOut(output)
	rootCmd.SetErr(output)
	return output
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestCheck_AllReady(t *testing.T) {
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(test.OkOutcome())
	output := setupCommand(t, executor)

	err := execute("check")

	require.NoError(t, err)
	assert.Contains(t, output.String(), "vmhana15sp5rpm.westeurope.cloudapp.azure.com")
	assert.Contains(t, output.String(), "All hosts are ready")
	assert.NotContains(t, output.String(), "vmhana16sp0rpm")
	executor.AssertNumberOfCalls(t, "Execute", 4)
}

func TestCheck_FailedHostExitsNotReady(t *testing.T) {
	executor := new(test.ExecutorMock)
	failing := mock.MatchedBy(func(host fleet.Host) bool {
		return host.Record.SpVersion == 6
	})
	executor.On("Execute", mock.Anything, failing, mock.Anything).Return(test.StatusOutcome(503))
	executor.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(test.OkOutcome())
	output := setupCommand(t, executor)

	err := execute("check")

	assert.ErrorIs(t, err, errNotReady)
	assert.Contains(t, output.String(), "1 host(s) are not ready")
	// two probes on the failing host are retried up to maxRetries
	executor.AssertNumberOfCalls(t, "Execute", 2+2*3)
}

func TestCheck_JsonOutput(t *testing.T) {
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(test.OkOutcome())
	output := setupCommand(t, executor)

	err := execute("check", "--output", "json", "--concurrency", "2")
	require.NoError(t, err)

	var summary readiness.Summary
	require.NoError(t, json.Unmarshal(output.Bytes(), &summary))
	assert.Equal(t, 2, summary.HostsChecked)
	assert.Equal(t, 4, summary.TotalChecks)
	assert.Equal(t, 4, summary.PassedChecks)
	assert.Empty(t, summary.FailedHosts)
	assert.NotEmpty(t, summary.RunID)
}

func TestCheck_MissingHostsFileRunsNoProbe(t *testing.T) {
	executor := new(test.ExecutorMock)
	setupCommand(t, executor)

	err := execute("check", "--hosts", "missing.csv")

	assert.True(t, config.IsConfigurationError(err))
	executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_TunneledVariantRequiresSshUser(t *testing.T) {
	executor := new(test.ExecutorMock)
	setupCommand(t, executor)

	err := execute("check", "--variant", "web+internal")

	assert.True(t, config.IsConfigurationError(err))
	executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_InvalidOutput(t *testing.T) {
	setupCommand(t, new(test.ExecutorMock))

	err := execute("check", "--output", "yaml")

	assert.True(t, config.IsConfigurationError(err))
}

func TestCheck_RegionFlag(t *testing.T) {
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(test.OkOutcome())
	output := setupCommand(t, executor)

	err := execute("check", "--region", "northeurope")

	require.NoError(t, err)
	assert.Contains(t, output.String(), "vmhana15sp5rpm.northeurope.cloudapp.azure.com")
	assert.Equal(t, "northeurope", config.Current.Region)
}

func TestFleet(t *testing.T) {
	output := setupCommand(t, new(test.ExecutorMock))

	err := execute("fleet")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(t, []string{
		"vmhana15sp5rpm.westeurope.cloudapp.azure.com",
		"vmhana15sp6rpm.westeurope.cloudapp.azure.com",
	}, lines)
}

func TestInit_WritesDefaultConfiguration(t *testing.T) {
	output := setupCommand(t, new(test.ExecutorMock))
	require.NoError(t, os.Remove("config.yml"))

	err := execute("init")

	require.NoError(t, err)
	assert.Contains(t, output.String(), "config.yml")
	content, err := os.ReadFile("config.yml")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(content)), "westeurope")
}

func TestInit_KeepsExistingConfiguration(t *testing.T) {
	setupCommand(t, new(test.ExecutorMock))

	err := execute("init")

	assert.Error(t, err)
}

func TestNewChecker_Throttled(t *testing.T) {
	executor := new(test.ExecutorMock)
	executor.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(test.OkOutcome())
	setupCommand(t, executor)
	require.NoError(t, config.Load(""))

	current := config.Current
	current.Throttling.Requests = 10
	current.Throttling.Interval = time.Second

	checker, hosts, err := newChecker(current)
	require.NoError(t, err)

	summary := checker.CheckFleet(context.Background(), hosts)
	assert.True(t, summary.OK())
	assert.Equal(t, 4, summary.TotalChecks)
}
