// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"github.com/go-openapi/runtime/middleware"
	log "github.com/sirupsen/logrus"
)

func (c *Controller) GetCompaniesHandler(params GetCompaniesParams) middleware.Responder {
	companies, err := c.companies.FindAll(params.HTTPRequest.Context(), params.Filters)
	if err != nil {
		return NewErrorResponse(params.HTTPRequest, err)
	}
	return NewOK(&CompaniesPayload{Companies: companies})
}

func (c *Controller) PostCompanyHandler(params PostCompanyParams) middleware.Responder {
	company, err := c.companies.Create(params.HTTPRequest.Context(), params.Body)
	if err != nil {
		return NewErrorResponse(params.HTTPRequest, err)
	}
	return NewCreated(&CompanyPayload{Company: company})
}

func (c *Controller) GetCompanyHandler(params CompanyParams) middleware.Responder {
	company, err := c.companies.Get(params.HTTPRequest.Context(), params.Handle)
	if err != nil {
		return NewErrorResponse(params.HTTPRequest, err)
	}
	return NewOK(&CompanyPayload{Company: company})
}

func (c *Controller) PatchCompanyHandler(params PatchCompanyParams) middleware.Responder {
	company, err := c.companies.Update(params.HTTPRequest.Context(), params.Handle, params.Body)
	if err != nil {
		return NewErrorResponse(params.HTTPRequest, err)
	}
	log.WithField("handle", params.Handle).
		WithField("attributes", params.Body.Names()).
		Info("Updated company")
	return NewOK(&CompanyPayload{Company: company})
}

func (c *Controller) DeleteCompanyHandler(params CompanyParams) middleware.Responder {
	if err := c.companies.Remove(params.HTTPRequest.Context(), params.Handle); err != nil {
		return NewErrorResponse(params.HTTPRequest, err)
	}
	log.WithField("handle", params.Handle).Info("Deleted company")
	return NewOK(&DeletedPayload{Deleted: params.Handle})
}
