// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/sapcc/jobly/internal/clause"
)

func TestRetryTransient(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		return errors.New("connection reset")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPermanent(t *testing.T) {
	for _, permanentErr := range []error{
		&pgconn.PgError{Code: pgerrcode.UniqueViolation},
		pgx.ErrNoRows,
		&clause.UnknownFilterError{Name: "foo"},
	} {
		calls := 0
		err := Retry(func() error {
			calls++
			return permanentErr
		})
		assert.Equal(t, permanentErr, err)
		assert.Equal(t, 1, calls)
	}
}
