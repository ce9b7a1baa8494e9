package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/codeforge/codemod/pkg/recipeerr"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseRecipe loads a recipe file from disk, validates it, and returns the
// resulting model.
func ParseRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, recipeerr.NewParseError(path, 0, err)
	}

	var recipe Recipe
	if err := yaml.Unmarshal(data, &recipe); err != nil {
		return nil, recipeerr.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateRecipe(&recipe); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
