// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	jerrors "github.com/sapcc/jobly/internal/errors"
)

// Retry runs fn up to three times. Errors that will not go away by retrying
// (constraint violations, missing rows, bad input, cancellation) are
// returned immediately.
func Retry(fn func() error) (err error) {
	retries := 2
	for {
		err = fn()
		if err == nil || retries == 0 || permanent(err) {
			return err
		}
		log.WithError(err).WithField("retries", retries).Warn("db.Retry")
		retries--
	}
}

func permanent(err error) bool {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pgerrcode.IsIntegrityConstraintViolation(pe.Code) ||
			pgerrcode.IsDataException(pe.Code) ||
			pgerrcode.IsSyntaxErrororAccessRuleViolation(pe.Code)
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, jerrors.ErrBadRequest) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
