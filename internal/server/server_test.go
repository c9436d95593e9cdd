// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/jobly/internal/auth"
	"github.com/sapcc/jobly/internal/config"
	"github.com/sapcc/jobly/internal/controller"
	"github.com/sapcc/jobly/internal/policy"
)

var companyColumns = []string{"handle", "name", "description", "num_employees", "logo_url"}

type fixture struct {
	mock    pgxmock.PgxPoolIface
	handler http.Handler
	admin   string
	user    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	config.Global.ApiSettings.AuthStrategy = "jwt"
	config.Global.ApiSettings.RateLimit = 0
	config.Global.Auth.SecretKey = "secret-dev"
	config.Global.Auth.TokenLifetime = time.Hour
	policy.SetPolicyEngine("jwt")

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	jwt, err := auth.InitializeJWT()
	require.NoError(t, err)
	admin, err := jwt.GenerateToken("admin", true)
	require.NoError(t, err)
	user, err := jwt.GenerateToken("u1", false)
	require.NoError(t, err)

	return &fixture{
		mock:    mock,
		handler: NewRouter(controller.NewController(mock), nil, jwt),
		admin:   admin,
		user:    user,
	}
}

func (f *fixture) do(method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rd)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)
	return rec
}

func TestGetCompanies(t *testing.T) {
	f := newFixture(t)
	n := 2
	logo := "http://c2.img"

	f.mock.
		ExpectQuery("SELECT handle, name, description, num_employees, logo_url FROM companies " +
			"WHERE name ilike $1 AND num_employees >= $2 ORDER BY name").
		WithArgs("%c%", int64(2)).
		WillReturnRows(pgxmock.NewRows(companyColumns).AddRow("c2", "C2", "Desc2", &n, &logo))

	rec := f.do(http.MethodGet, "/companies?nameLike=c&minEmployees=2", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"companies": [{"handle": "c2", "name": "C2", "description": "Desc2",
		"numEmployees": 2, "logoUrl": "http://c2.img"}]}`, rec.Body.String())
}

func TestGetCompaniesBadFilters(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/companies?minEmployees=10&maxEmployees=5", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code": 400, "message": "minEmployees cannot be greater than maxEmployees"}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/companies?color=red", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "color is not a valid filter name")

	rec = f.do(http.MethodGet, "/companies?minEmployees=many", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/companies?minEmployees=99999999999", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOversizedEmployeeCountRejected(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/companies", f.admin,
		`{"handle": "new", "name": "New", "description": "D", "numEmployees": 3000000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPatch, "/companies/c1", f.admin, `{"numEmployees": 3000000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostCompanyRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	body := `{"handle": "new", "name": "New", "description": "D"}`

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/companies", "", body).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/companies", f.user, body).Code)
}

func TestPostCompany(t *testing.T) {
	f := newFixture(t)
	var nilInt *int
	var nilString *string

	f.mock.
		ExpectQuery("INSERT INTO companies (handle,name,description,num_employees,logo_url) " +
			"VALUES ($1,$2,$3,$4,$5) RETURNING handle, name, description, num_employees, logo_url").
		WithArgs("new", "New", "D", nilInt, nilString).
		WillReturnRows(pgxmock.NewRows(companyColumns).AddRow("new", "New", "D", nilInt, nilString))

	rec := f.do(http.MethodPost, "/companies", f.admin, `{"handle": "new", "name": "New", "description": "D"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"company": {"handle": "new", "name": "New", "description": "D",
		"numEmployees": null, "logoUrl": null}}`, rec.Body.String())
}

func TestPatchCompany(t *testing.T) {
	f := newFixture(t)
	n := 10
	var nilString *string

	f.mock.
		ExpectQuery(`UPDATE companies SET "num_employees"=$1, "name"=$2 WHERE handle = $3 ` +
			"RETURNING handle, name, description, num_employees, logo_url").
		WithArgs(int64(10), "C1 New", "c1").
		WillReturnRows(pgxmock.NewRows(companyColumns).AddRow("c1", "C1 New", "Desc1", &n, nilString))

	rec := f.do(http.MethodPatch, "/companies/c1", f.admin, `{"numEmployees": 10, "name": "C1 New"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"C1 New"`)
}

func TestPatchCompanyRejected(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/companies/c1", f.admin, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/companies/c1", f.admin, `{"handle": "c2"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPatch, "/companies/c1", f.user, `{"name": "x"}`).Code)
}

func TestGetCompanyNotFound(t *testing.T) {
	f := newFixture(t)

	f.mock.
		ExpectQuery("SELECT handle, name, description, num_employees, logo_url FROM companies WHERE handle = $1").
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows(companyColumns))

	rec := f.do(http.MethodGet, "/companies/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code": 404, "message": "No company: nope"}`, rec.Body.String())
}

func TestDeleteCompany(t *testing.T) {
	f := newFixture(t)

	f.mock.
		ExpectExec("DELETE FROM companies WHERE handle = $1").
		WithArgs("c1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	rec := f.do(http.MethodDelete, "/companies/c1", f.admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted": "c1"}`, rec.Body.String())
}

func TestVersionAndHealthcheck(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/version", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), config.Version)

	rec = f.do(http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/jobs", "", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPut, "/companies/c1", f.admin, "{}").Code)
}

func TestRecoversPanics(t *testing.T) {
	handler := setupGlobalMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
