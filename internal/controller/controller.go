// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sapcc/jobly/internal/db"
)

var companyOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "jobly_company_operations_total",
	Help: "The total number of company operations by outcome",
}, []string{"operation", "outcome"})

func InitializePrometheus() {
	prometheus.DefaultRegisterer.MustRegister(companyOperations)
	for _, op := range []string{"create", "find_all", "get", "update", "remove"} {
		companyOperations.WithLabelValues(op, "success").Add(0)
	}
}

type Controller struct {
	companies *Companies
}

func NewController(pool db.PgxIface) *Controller {
	return &Controller{companies: NewCompanies(pool)}
}
