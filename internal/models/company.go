// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"

	"github.com/sapcc/jobly/internal/clause"
	"github.com/sapcc/jobly/internal/errors"
)

// Company is a row of the companies table.
type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int    `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// CompanyNew is the payload of a company creation.
type CompanyNew struct {
	Handle       string  `json:"handle" validate:"required,min=1,max=25,lowercase"`
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,min=0,max=2147483647"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

// CompanyUpdatable lists the attributes a partial update may touch, in
// their external (JSON) spelling.
var CompanyUpdatable = []string{"name", "description", "numEmployees", "logoUrl"}

// CompanyColumns translates external attribute names to column names.
var CompanyColumns = func() clause.Translation {
	t := make(clause.Translation, len(CompanyUpdatable))
	for _, name := range CompanyUpdatable {
		if col := strcase.ToSnake(name); col != name {
			t[name] = col
		}
	}
	return t
}()

// CompanySelect is the column list returned for a company.
var CompanySelect = []string{"handle", "name", "description", "num_employees", "logo_url"}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a creation payload.
func (c *CompanyNew) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Newf(errors.ErrBadRequest, "%s", err.Error())
	}
	return nil
}

var updateRules = map[string]string{
	"name":         "min=1,max=255",
	"description":  "",
	"numEmployees": "min=0,max=2147483647",
	"logoUrl":      "url",
}

// ValidateCompanyUpdate rejects attributes that are not updatable and values
// that do not fit their column. Null is allowed for the nullable columns.
func ValidateCompanyUpdate(data clause.Fields) error {
	var problems []string
	for _, field := range data {
		rule, ok := updateRules[field.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s is not an updatable attribute", field.Name))
			continue
		}
		if err := validateField(field, rule); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %s", field.Name, err.Error()))
		}
	}
	if len(problems) > 0 {
		return errors.Newf(errors.ErrBadRequest, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func validateField(field clause.Field, rule string) error {
	switch v := field.Value.(type) {
	case nil:
		if field.Name == "name" || field.Name == "description" {
			return fmt.Errorf("must not be null")
		}
		return nil
	case string:
		if field.Name == "numEmployees" {
			return fmt.Errorf("must be an integer")
		}
		if rule == "" {
			return nil
		}
		return validate.Var(v, rule)
	case int64:
		if field.Name != "numEmployees" {
			return fmt.Errorf("must be a string")
		}
		return validate.Var(v, rule)
	default:
		return fmt.Errorf("unsupported value %v", v)
	}
}
