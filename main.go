// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fleet-readiness/cmd"
)

func main() {
	cmd.Execute()
}
