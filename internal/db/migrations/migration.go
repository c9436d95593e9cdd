// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package migrations

import (
	"context"

	"github.com/z0ne-dev/mgx/v2"
)

var Migrations = mgx.Migrations(
	mgx.NewMigration("initial", func(ctx context.Context, commands mgx.Commands) error {
		if _, err := commands.Exec(ctx, `
			CREATE TABLE companies
			(
				handle        VARCHAR(25)  PRIMARY KEY CHECK (handle = lower(handle)),
				name          TEXT         UNIQUE NOT NULL,
				num_employees INTEGER      CHECK (num_employees >= 0),
				description   TEXT         NOT NULL,
				logo_url      TEXT
			);`,
		); err != nil {
			return err
		}

		return nil
	}),
	mgx.NewMigration("companies_name_idx", func(ctx context.Context, commands mgx.Commands) error {
		if _, err := commands.Exec(ctx, `CREATE INDEX companies_name_idx ON companies (name);`); err != nil {
			return err
		}
		return nil
	}),
)
