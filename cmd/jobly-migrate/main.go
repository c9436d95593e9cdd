// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"github.com/z0ne-dev/mgx/v2"

	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/db"
	"github.com/sapcc/jobly/internal/db/migrations"
)

func main() {
	parser := flags.NewParser(&config.Global, flags.Default)
	parser.ShortDescription = "Jobly Migration"

	if _, err := parser.Parse(); err != nil {
		code := 1
		var fe *flags.Error
		if errors.As(err, &fe) {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		os.Exit(code)
	}

	config.ParseConfig(parser)

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer pool.Close()

	migrator, err := mgx.New(migrations.Migrations)
	if err != nil {
		log.Fatal(err.Error())
	}
	if err := migrator.Migrate(ctx, pool); err != nil {
		log.Fatal(err.Error())
	}
	log.Info("Database migrated")
}
