// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fleet-readiness/internal/readiness"
	"github.com/gofiber/fiber/v2"
	"sync/atomic"
)

var latest atomic.Pointer[readiness.Summary]

// Publish makes summary the one served by the API.
func Publish(summary readiness.Summary) {
	latest.Store(&summary)
}

func getReadiness(ctx *fiber.Ctx) error {
	summary := latest.Load()
	if summary == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "no readiness run finished yet"})
	}

	status := fiber.StatusOK
	if !summary.OK() {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(summary)
}

func getHostReadiness(ctx *fiber.Ctx) error {
	summary := latest.Load()
	if summary == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "no readiness run finished yet"})
	}

	fqdn := ctx.Params("fqdn")
	for _, host := range summary.Hosts {
		if host.Host.FQDN != fqdn {
			continue
		}
		status := fiber.StatusOK
		if !host.Ready() {
			status = fiber.StatusServiceUnavailable
		}
		return ctx.Status(status).JSON(host)
	}

	return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "host " + fqdn + " is not part of the fleet"})
}
