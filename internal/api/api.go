// Copyright 2024 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fleet-readiness/internal/metrics"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/rs/zerolog/log"
)

var (
	app *fiber.App
)

func init() {
	app = newApp()
}

func newApp() *fiber.App {
	application := fiber.New(fiber.Config{DisableStartupMessage: true})

	application.Use(healthcheck.New())

	application.Get("/metrics", metrics.NewPrometheusMiddleware())

	v1 := application.Group("/api/v1")

	v1.Get("/readiness", getReadiness)
	v1.Get("/readiness/hosts/:fqdn", getHostReadiness)

	return application
}

func Listen(port int) error {
	log.Info().Msgf("Listening on port %d", port)
	return app.Listen(fmt.Sprintf(":%d", port))
}

func Shutdown() error {
	return app.Shutdown()
}
