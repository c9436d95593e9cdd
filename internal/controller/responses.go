// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	goerrors "errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/runtime/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/jobly/internal/errors"
	"github.com/sapcc/jobly/internal/models"
)

type payloadResponder struct {
	code    int
	payload any
}

func (o *payloadResponder) WriteResponse(rw http.ResponseWriter, producer runtime.Producer) {
	rw.Header().Set(runtime.HeaderContentType, runtime.JSONMime)
	rw.WriteHeader(o.code)
	if err := producer.Produce(rw, o.payload); err != nil {
		panic(err) // let the recovery middleware deal with this
	}
}

type CompanyPayload struct {
	Company *models.Company `json:"company"`
}

type CompaniesPayload struct {
	Companies []*models.Company `json:"companies"`
}

type DeletedPayload struct {
	Deleted string `json:"deleted"`
}

func NewOK(payload any) middleware.Responder {
	return &payloadResponder{code: http.StatusOK, payload: payload}
}

func NewCreated(payload any) middleware.Responder {
	return &payloadResponder{code: http.StatusCreated, payload: payload}
}

// errorResponder renders err as {"code": ..., "message": ...}.
type errorResponder struct {
	request *http.Request
	err     error
}

// NewErrorResponse maps err onto an HTTP status via its sentinel kind.
// Errors without a kind are logged, reported to Sentry and hidden behind a
// generic 500.
func NewErrorResponse(r *http.Request, err error) middleware.Responder {
	return &errorResponder{request: r, err: err}
}

func StatusCode(err error) int {
	switch {
	case goerrors.Is(err, errors.ErrBadRequest):
		return http.StatusBadRequest
	case goerrors.Is(err, errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case goerrors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case goerrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case goerrors.Is(err, errors.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (o *errorResponder) WriteResponse(rw http.ResponseWriter, _ runtime.Producer) {
	code := StatusCode(o.err)
	msg := o.err.Error()
	if code == http.StatusInternalServerError {
		log.WithError(o.err).
			WithField("path", o.request.URL.Path).
			Error("request failed")
		sentry.CaptureException(o.err)
		msg = http.StatusText(code)
	}
	oaerrors.ServeError(rw, o.request, oaerrors.New(int32(code), "%s", msg))
}
