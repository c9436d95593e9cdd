// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	oaerrors "github.com/go-openapi/errors"

	"github.com/sapcc/jobly/internal/policy"
)

func principalFrom(r *http.Request) policy.Principal {
	if claims := ClaimsFrom(r.Context()); claims != nil {
		return claims
	}
	return nil
}

func ensure(rule policy.Rule, target func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var t string
			if target != nil {
				t = target(r)
			}
			if !policy.Engine.Authorize(rule, principalFrom(r), t) {
				oaerrors.ServeError(w, r, oaerrors.New(http.StatusUnauthorized, "Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnsureLoggedIn rejects anonymous requests with 401.
func EnsureLoggedIn(next http.Handler) http.Handler {
	return ensure(policy.RuleLoggedIn, nil)(next)
}

// EnsureAdmin rejects requests without admin claims with 401.
func EnsureAdmin(next http.Handler) http.Handler {
	return ensure(policy.RuleAdmin, nil)(next)
}

// EnsureSelfOrAdmin admits admins and the user named by the route parameter
// param. No company route mounts it; it guards per-user routes.
func EnsureSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return ensure(policy.RuleSelfOrAdmin, func(r *http.Request) string {
		return chi.URLParam(r, param)
	})
}
