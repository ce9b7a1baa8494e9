package config

import (
	"fmt"

	"github.com/codeforge/codemod/pkg/recipeerr"
)

// ValidateRecipe runs struct-tag validation, then the structural checks a
// tag alone can't express: exactly one of template/upgrade_path, no
// duplicate utility names within a template, no dangling depends_on or
// execute_if reference, and no dependency cycle.
func ValidateRecipe(recipe *Recipe) error {
	if err := validatorInstance().Struct(recipe); err != nil {
		return recipeerr.NewValidationError("", err.Error(), err)
	}

	hasTemplate := len(recipe.Template) > 0
	hasUpgradePath := len(recipe.UpgradePath) > 0
	if hasTemplate == hasUpgradePath {
		return recipeerr.NewValidationError("", "recipe must define exactly one of template or upgrade_path", nil)
	}

	if hasTemplate {
		return validateTemplate("template", recipe.Template)
	}

	for i, step := range recipe.UpgradePath {
		field := fmt.Sprintf("upgrade_path[%d]", i)
		if err := validateTemplate(field, step.Template); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplate(field string, utilities []Utility) error {
	seen := make(map[string]bool, len(utilities))
	for _, u := range utilities {
		if seen[u.Name] {
			return recipeerr.NewValidationError(field, fmt.Sprintf("duplicate utility name %q", u.Name), nil)
		}
		seen[u.Name] = true
	}

	for _, u := range utilities {
		for _, dep := range u.DependsOn {
			if !seen[dep] {
				return recipeerr.NewValidationError(field, fmt.Sprintf("%s depends_on unknown utility %q", u.Name, dep), nil)
			}
		}
		if u.ExecuteIf != "" && !seen[u.ExecuteIf] {
			return recipeerr.NewValidationError(field, fmt.Sprintf("%s execute_if references unknown utility %q", u.Name, u.ExecuteIf), nil)
		}
	}

	if cycle := detectCycle(utilities); cycle != nil {
		return recipeerr.NewValidationError(field, fmt.Sprintf("dependency cycle detected: %v", cycle), nil)
	}

	return nil
}
