package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeforge/codemod/internal/config"
	"github.com/codeforge/codemod/internal/registry"
	"github.com/codeforge/codemod/internal/transform"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <recipe.yaml>",
		Short: "Parse and validate a recipe without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
	return cmd
}

func runValidate(recipePath string) error {
	recipe, err := config.ParseRecipe(recipePath)
	if err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}

	fmt.Fprintf(os.Stdout, "recipe %q is valid\n", recipe.Name)

	if len(recipe.Template) > 0 {
		tmpl, err := registry.BuildTemplate(recipe.Name, recipe.Template)
		if err != nil {
			return fmt.Errorf("resolving template: %w", err)
		}
		printTemplateGraph(tmpl)
		return nil
	}

	for _, step := range recipe.UpgradePath {
		tmpl, err := registry.BuildTemplate(recipe.Name+":"+step.FromVersion+"->"+step.ToVersion, step.Template)
		if err != nil {
			return fmt.Errorf("resolving step %s->%s: %w", step.FromVersion, step.ToVersion, err)
		}
		fmt.Fprintf(os.Stdout, "\nstep %s -> %s\n", step.FromVersion, step.ToVersion)
		printTemplateGraph(tmpl)
	}

	return nil
}

// printTemplateGraph reports the utility count and a name -> depends_on /
// execute_if dependency listing, the way the teacher's verify command
// reports a step-by-step table.
func printTemplateGraph(tmpl *transform.Template) {
	fmt.Fprintf(os.Stdout, "template %q: %d top-level utilities\n", tmpl.Name, len(tmpl.Utilities))
	for _, u := range tmpl.Utilities {
		var edges []string
		for _, dep := range u.Dependencies() {
			edges = append(edges, "depends_on:"+dep)
		}
		if cond := u.ExecuteIf(); cond != "" {
			edges = append(edges, "execute_if:"+cond)
		}
		if len(edges) == 0 {
			fmt.Fprintf(os.Stdout, "  %s\n", u.Name())
			continue
		}
		fmt.Fprintf(os.Stdout, "  %s (%s)\n", u.Name(), strings.Join(edges, ", "))
	}
}
