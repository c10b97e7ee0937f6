// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"encoding/csv"
	"errors"
	"fleet-readiness/internal/config"
	"io"
	"os"
	"strconv"
	"strings"
)

var tableColumns = []string{"prefix", "slesVersion", "spVersion", "suffix"}

// LoadTable reads the host table from path.
func LoadTable(path string) ([]HostRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, config.NewConfigurationError(err, "could not open host table %s", path)
	}
	defer file.Close()

	return ParseTable(file)
}

// ParseTable parses a comma separated host table. The header row decides the column order;
// unknown columns are ignored, blank lines and lines starting with # are skipped.
func ParseTable(r io.Reader) ([]HostRecord, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, config.NewConfigurationError(nil, "host table is empty")
	}
	if err != nil {
		return nil, config.NewConfigurationError(err, "could not read host table header")
	}

	index := make(map[string]int, len(header))
	for i, column := range header {
		index[strings.TrimSpace(column)] = i
	}
	for _, column := range tableColumns {
		if _, ok := index[column]; !ok {
			return nil, config.NewConfigurationError(nil, "host table header misses column %q", column)
		}
	}

	var records []HostRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, config.NewConfigurationError(err, "could not read host table")
		}

		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, index)
		if err != nil {
			return nil, config.NewConfigurationError(err, "invalid host table line %d", line)
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (HostRecord, error) {
	field := func(name string) (string, error) {
		i := index[name]
		if i >= len(row) {
			return "", errors.New("missing column " + name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	prefix, err := field("prefix")
	if err != nil {
		return HostRecord{}, err
	}
	suffix, err := field("suffix")
	if err != nil {
		return HostRecord{}, err
	}
	slesVersion, err := intField(field, "slesVersion")
	if err != nil {
		return HostRecord{}, err
	}
	spVersion, err := intField(field, "spVersion")
	if err != nil {
		return HostRecord{}, err
	}

	return HostRecord{Prefix: prefix, SlesVersion: slesVersion, SpVersion: spVersion, Suffix: suffix}, nil
}

func intField(field func(string) (string, error), name string) (int, error) {
	value, err := field(name)
	if err != nil {
		return 0, err
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New(name + " is not a number: " + value)
	}
	return number, nil
}
