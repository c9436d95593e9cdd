// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package policy

type noOpPolicyEngine struct{}

func (p noOpPolicyEngine) init() {}

func (p noOpPolicyEngine) Authorize(_ Rule, _ Principal, _ string) bool {
	return true
}
