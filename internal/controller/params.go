// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/sapcc/jobly/internal/clause"
	"github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/internal/models"
)

// GetCompaniesParams are the bound parameters of GET /companies.
type GetCompaniesParams struct {
	HTTPRequest *http.Request

	// Filters keeps the query keys in the order they appear in the URL.
	Filters clause.Fields
}

// BindRequest reads the search filters from the raw query. Employee bounds
// must be base 10 integers, all other values are passed on as strings.
func (o *GetCompaniesParams) BindRequest(r *http.Request) error {
	o.HTTPRequest = r
	o.Filters = make(clause.Fields, 0)

	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return errors.Newf(errors.ErrBadRequest, "malformed query key %q", rawKey)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return errors.Newf(errors.ErrBadRequest, "malformed value for %s", key)
		}

		switch key {
		case clause.MinEmployees, clause.MaxEmployees:
			// num_employees is a 32-bit column
			n, err := strconv.ParseInt(value, 10, 32)
			if err != nil {
				return errors.Newf(errors.ErrBadRequest, "%s must be a 32-bit integer", key)
			}
			o.Filters.Set(key, n)
		default:
			o.Filters.Set(key, value)
		}
	}
	return nil
}

// PostCompanyParams are the bound parameters of POST /companies.
type PostCompanyParams struct {
	HTTPRequest *http.Request
	Body        models.CompanyNew
}

func (o *PostCompanyParams) BindRequest(r *http.Request) error {
	o.HTTPRequest = r

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o.Body); err != nil {
		return errors.Newf(errors.ErrBadRequest, "invalid company: %s", err.Error())
	}
	return nil
}

// CompanyParams are the bound parameters of the /companies/{handle} routes
// without a body.
type CompanyParams struct {
	HTTPRequest *http.Request
	Handle      string
}

func (o *CompanyParams) BindRequest(r *http.Request) error {
	o.HTTPRequest = r
	o.Handle = chi.URLParam(r, "handle")
	if o.Handle == "" {
		return errors.Newf(errors.ErrBadRequest, "missing company handle")
	}
	return nil
}

// PatchCompanyParams are the bound parameters of PATCH /companies/{handle}.
type PatchCompanyParams struct {
	CompanyParams

	// Body keeps the attribute order of the request document.
	Body clause.Fields
}

func (o *PatchCompanyParams) BindRequest(r *http.Request) error {
	if err := o.CompanyParams.BindRequest(r); err != nil {
		return err
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return clause.ErrEmptyInput
	}
	if err := json.Unmarshal(data, &o.Body); err != nil {
		return errors.Newf(errors.ErrBadRequest, "invalid company update: %s", err.Error())
	}
	return nil
}
