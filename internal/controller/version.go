// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/runtime/middleware"

	"github.com/sapcc/jobly/internal/clause"
	"github.com/sapcc/jobly/internal/config"
)

type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type Version struct {
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
	Links        []Link   `json:"links"`
}

func (c *Controller) GetVersionHandler(r *http.Request) middleware.Responder {
	capabilities := []string{
		fmt.Sprintf("filters=%s,%s,%s", clause.MinEmployees, clause.MaxEmployees, clause.NameLike),
	}
	if !config.Global.ApiSettings.DisableCors {
		capabilities = append(capabilities, "cors")
	}
	if config.Global.ApiSettings.AuthStrategy != "none" {
		capabilities = append(capabilities, config.Global.ApiSettings.AuthStrategy)
	}
	if config.Global.ApiSettings.RateLimit > 0 {
		capabilities = append(capabilities, fmt.Sprintf("ratelimit=%.2f",
			config.Global.ApiSettings.RateLimit))
	}
	return NewOK(&Version{
		Version:      config.Version,
		Capabilities: capabilities,
		Links: []Link{{
			Href: config.GetApiBaseUrl(r),
			Rel:  "self",
		}},
	})
}
