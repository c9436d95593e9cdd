// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"github.com/sapcc/go-bits/logg"

	"github.com/sapcc/jobly/internal/config"
)

type jwtPolicyEngine struct{}

func (p jwtPolicyEngine) init() {
	if config.Global.ApiSettings.AuthStrategy != "jwt" {
		logg.Fatal("Policy engine jwt supports only api_settings.auth_strategy = 'jwt'")
	}
}

func (p jwtPolicyEngine) Authorize(rule Rule, principal Principal, target string) bool {
	if principal == nil {
		return false
	}

	switch rule {
	case RuleLoggedIn:
		return true
	case RuleAdmin:
		return principal.Privileged()
	case RuleSelfOrAdmin:
		return principal.Privileged() || principal.Subject() == target
	}
	return false
}
