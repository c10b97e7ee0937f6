// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"fleet-readiness/internal/config"
	"fmt"
	"github.com/rs/zerolog/log"
	"slices"
)

// HostRecord is one row of the host table.
type HostRecord struct {
	Prefix      string `json:"prefix"`
	SlesVersion int    `json:"slesVersion"`
	SpVersion   int    `json:"spVersion"`
	Suffix      string `json:"suffix"`
}

// Name returns the host label, e.g. vm15sp5rpm.
func (r HostRecord) Name() string {
	return fmt.Sprintf("%s%dsp%d%s", r.Prefix, r.SlesVersion, r.SpVersion, r.Suffix)
}

// FQDN returns the public Azure DNS name of the host in the given region.
func (r HostRecord) FQDN(region string) string {
	return fmt.Sprintf("%s.%s.cloudapp.azure.com", r.Name(), region)
}

// Host is an active fleet member.
type Host struct {
	Record HostRecord `json:"record"`
	FQDN   string     `json:"fqdn"`
}

type Filter struct {
	Suffixes       []string
	MaxSlesVersion int
}

// DefaultFilter keeps rpm hosts below SLES 16.
func DefaultFilter() Filter {
	return Filter{Suffixes: []string{"rpm"}, MaxSlesVersion: 16}
}

// Accepts reports whether the record belongs to the active fleet.
func (f Filter) Accepts(r HostRecord) bool {
	if !slices.Contains(f.Suffixes, r.Suffix) {
		return false
	}
	if f.MaxSlesVersion > 0 && r.SlesVersion >= f.MaxSlesVersion {
		return false
	}
	return true
}

// Active builds the fleet from the records that pass the filter. An empty fleet is a
// configuration error.
func Active(records []HostRecord, region string, filter Filter) ([]Host, error) {
	hosts := make([]Host, 0, len(records))
	for _, record := range records {
		if !filter.Accepts(record) {
			log.Debug().Msgf("Skipping host %s (suffix %q, SLES %d)", record.Name(), record.Suffix, record.SlesVersion)
			continue
		}
		hosts = append(hosts, Host{Record: record, FQDN: record.FQDN(region)})
	}

	if len(hosts) == 0 {
		return nil, config.NewConfigurationError(nil, "no active hosts in fleet (%d records filtered out)", len(records))
	}
	return hosts, nil
}
