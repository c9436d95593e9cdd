// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"context"
	goerrors "errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/internal/clause"
	"github.com/sapcc/jobly/internal/db"
	"github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/internal/models"
)

const companiesTable = "companies"

// Companies reads and writes company records.
type Companies struct {
	pool db.PgxIface
}

func NewCompanies(pool db.PgxIface) *Companies {
	return &Companies{pool: pool}
}

func observe(operation string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case goerrors.Is(err, errors.ErrNotFound):
		outcome = "not_found"
	case goerrors.Is(err, errors.ErrBadRequest), goerrors.Is(err, errors.ErrDuplicate):
		outcome = "rejected"
	default:
		outcome = "error"
	}
	companyOperations.WithLabelValues(operation, outcome).Inc()
}

func isIntegrityViolation(err error) bool {
	var pe *pgconn.PgError
	return goerrors.As(err, &pe) && pgerrcode.IsIntegrityConstraintViolation(pe.Code)
}

// Create inserts a new company.
func (c *Companies) Create(ctx context.Context, data models.CompanyNew) (company *models.Company, err error) {
	defer func() { observe("create", err) }()

	if err = data.Validate(); err != nil {
		return nil, err
	}

	sql, args, err := db.Insert(companiesTable).
		Columns(models.CompanySelect...).
		Values(data.Handle, data.Name, data.Description, data.NumEmployees, data.LogoURL).
		Returning(models.CompanySelect...).
		ToSQL()
	if err != nil {
		return nil, err
	}

	company = new(models.Company)
	if err = pgxscan.Get(ctx, c.pool, company, sql, args...); err != nil {
		if isIntegrityViolation(err) {
			return nil, errors.Newf(errors.ErrDuplicate, "Duplicate company: %s", data.Handle)
		}
		return nil, err
	}

	log.WithField("handle", company.Handle).Debug("Created company")
	return company, nil
}

// FindAll lists companies ordered by name, narrowed down by filters (see
// clause.Filter for the supported filters).
func (c *Companies) FindAll(ctx context.Context, filters clause.Fields) (companies []*models.Company, err error) {
	defer func() { observe("find_all", err) }()

	where, err := clause.Filter(filters)
	if err != nil {
		return nil, err
	}

	sql, args, err := db.Select(models.CompanySelect...).
		From(companiesTable).
		WhereClause(where).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, err
	}

	companies = make([]*models.Company, 0)
	err = db.Retry(func() error {
		companies = companies[:0]
		return pgxscan.Select(ctx, c.pool, &companies, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// Get returns the company identified by handle.
func (c *Companies) Get(ctx context.Context, handle string) (company *models.Company, err error) {
	defer func() { observe("get", err) }()

	sql, args, err := db.Select(models.CompanySelect...).
		From(companiesTable).
		Where("handle = ?", handle).
		ToSQL()
	if err != nil {
		return nil, err
	}

	company = new(models.Company)
	err = db.Retry(func() error {
		return pgxscan.Get(ctx, c.pool, company, sql, args...)
	})
	if pgxscan.NotFound(err) {
		return nil, errors.Newf(errors.ErrNotFound, "No company: %s", handle)
	} else if err != nil {
		return nil, err
	}
	return company, nil
}

// Update applies a partial update. Only the attributes present in data are
// changed, they must be a subset of models.CompanyUpdatable.
func (c *Companies) Update(ctx context.Context, handle string, data clause.Fields) (company *models.Company, err error) {
	defer func() { observe("update", err) }()

	if err = models.ValidateCompanyUpdate(data); err != nil {
		return nil, err
	}
	set, err := clause.PartialUpdate(data, models.CompanyColumns)
	if err != nil {
		return nil, err
	}

	sql, args, err := db.Update(companiesTable).
		Set(set).
		Where("handle = ?", handle).
		Returning(models.CompanySelect...).
		ToSQL()
	if err != nil {
		return nil, err
	}

	company = new(models.Company)
	if err = pgxscan.Get(ctx, c.pool, company, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, errors.Newf(errors.ErrNotFound, "No company: %s", handle)
		}
		if isIntegrityViolation(err) {
			return nil, errors.Newf(errors.ErrDuplicate, "Duplicate company name")
		}
		return nil, err
	}
	return company, nil
}

// Remove deletes the company identified by handle.
func (c *Companies) Remove(ctx context.Context, handle string) (err error) {
	defer func() { observe("remove", err) }()

	sql, args, err := db.Delete(companiesTable).Where("handle = ?", handle).ToSQL()
	if err != nil {
		return err
	}

	ct, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Newf(errors.ErrNotFound, "No company: %s", handle)
	}
	return nil
}
