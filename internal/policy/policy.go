// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	log "github.com/sirupsen/logrus"
)

// global policy engine
var Engine policy

// Rule names an access requirement of a route.
type Rule string

const (
	RuleLoggedIn    Rule = "logged_in"
	RuleAdmin       Rule = "admin"
	RuleSelfOrAdmin Rule = "self_or_admin"
)

// Principal is the authenticated caller of a request.
type Principal interface {
	Subject() string
	Privileged() bool
}

type policy interface {
	//init initializer
	init()
	//Authorize checks rule for principal, which is nil for anonymous requests.
	//target is the username a self_or_admin rule compares against.
	Authorize(rule Rule, principal Principal, target string) bool
}

func SetPolicyEngine(engine string) {
	switch engine {
	case "jwt":
		Engine = jwtPolicyEngine{}
		log.Info("Initializing jwt policy engine")
		Engine.init()
	case "noop", "none":
		log.Info("Initializing no-op policy engine")
		Engine = noOpPolicyEngine{}
		Engine.init()
	default:
		log.Fatalf("Policy engine '%s' not supported", engine)
	}
}
