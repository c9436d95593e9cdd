// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

// Package dbtest provides a disposable PostgreSQL database for tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/sapcc/go-bits/osext"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// URL returns the connection string of a clean test database: DB_URL when
// set, otherwise a throw-away postgres container. The test is skipped when
// neither is available.
func URL(t *testing.T) string {
	t.Helper()

	if _, ok := os.LookupEnv("DB_URL"); ok {
		return osext.GetenvOrDefault("DB_URL", "")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("jobly_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatal(err)
	}

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}
	return url
}
