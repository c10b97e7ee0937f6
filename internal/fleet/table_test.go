// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"fleet-readiness/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTable(t *testing.T) {
	table := `prefix,slesVersion,spVersion,suffix
vm,15,5,rpm
# retired
vm,12,5,rpm

vm, 16, 0, rpm
`

	records, err := ParseTable(strings.NewReader(table))

	require.NoError(t, err)
	assert.Equal(t, []HostRecord{
		{Prefix: "vm", SlesVersion: 15, SpVersion: 5, Suffix: "rpm"},
		{Prefix: "vm", SlesVersion: 12, SpVersion: 5, Suffix: "rpm"},
		{Prefix: "vm", SlesVersion: 16, SpVersion: 0, Suffix: "rpm"},
	}, records)
}

func TestParseTable_HeaderOrderAndExtraColumns(t *testing.T) {
	table := "suffix,prefix,image,spVersion,slesVersion\nrpm,trento,sles-byos,4,15\n"

	records, err := ParseTable(strings.NewReader(table))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, HostRecord{Prefix: "trento", SlesVersion: 15, SpVersion: 4, Suffix: "rpm"}, records[0])
}

func TestParseTable_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		table string
	}{
		{"empty", ""},
		{"missing column", "prefix,slesVersion,suffix\nvm,15,rpm\n"},
		{"not a number", "prefix,slesVersion,spVersion,suffix\nvm,fifteen,5,rpm\n"},
		{"short row", "prefix,slesVersion,spVersion,suffix\nvm,15\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := ParseTable(strings.NewReader(tc.table))

			assert.Nil(t, records)
			assert.Error(t, err)
			assert.True(t, config.IsConfigurationError(err))
		})
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts.csv")
	require.NoError(t, os.WriteFile(path, []byte("prefix,slesVersion,spVersion,suffix\nvm,15,3,rpm\n"), 0o600))

	records, err := LoadTable(path)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.csv"))

	assert.True(t, config.IsConfigurationError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
