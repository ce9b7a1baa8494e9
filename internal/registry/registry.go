// Package registry maps a recipe's utility-type strings to the catalogue
// constructor that builds the matching transform.TransformationUtility.
// This is deliberately narrower than a general plugin-loading registry:
// it never loads code at runtime, only selects among the utility types
// compiled into this binary. Dynamic extension loading is out of scope.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/codeforge/codemod/internal/catalogue"
	"github.com/codeforge/codemod/internal/config"
	"github.com/codeforge/codemod/internal/transform"
)

// Factory builds a TransformationUtility from a single recipe entry.
type Factory func(u config.Utility) (transform.TransformationUtility, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// RegisterFactory adds a constructor for utilityType. Called from init()
// in this package for every built-in catalogue utility; a caller embedding
// this module can register additional types the same way.
func RegisterFactory(utilityType string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[utilityType]; exists {
		return fmt.Errorf("registry: utility type %q already registered", utilityType)
	}
	registry[utilityType] = f
	return nil
}

func lookup(utilityType string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[utilityType]
	if !ok {
		return nil, fmt.Errorf("registry: no utility type %q registered", utilityType)
	}
	return f, nil
}

// Build constructs one TransformationUtility from its recipe entry,
// including the recipe-authored bookkeeping fields common to every type.
func Build(u config.Utility) (transform.TransformationUtility, error) {
	factory, err := lookup(u.Type)
	if err != nil {
		return nil, err
	}
	built, err := factory(u)
	if err != nil {
		return nil, fmt.Errorf("building utility %q: %w", u.Name, err)
	}

	saveResult := true
	if u.SaveResult != nil {
		saveResult = *u.SaveResult
	}
	if base, ok := built.(interface {
		ApplyRecipeFields(dependsOn []string, executeIf string, abortOnFailure bool, abortMessage string, saveResult bool, contextAttr string)
	}); ok {
		base.ApplyRecipeFields(u.DependsOn, u.ExecuteIf, u.AbortOnFailure, u.AbortMessage, saveResult, u.ContextAttr)
	}
	return built, nil
}

// BuildTemplate constructs every utility of a recipe template in order.
func BuildTemplate(name string, utilities []config.Utility) (*transform.Template, error) {
	built := make([]transform.TransformationUtility, 0, len(utilities))
	for _, u := range utilities {
		tu, err := Build(u)
		if err != nil {
			return nil, err
		}
		built = append(built, tu)
	}
	return &transform.Template{Name: name, Utilities: built}, nil
}

func init() {
	register := func(utilityType string, f Factory) {
		if err := RegisterFactory(utilityType, f); err != nil {
			panic(err)
		}
	}

	register("replace_text", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.ReplaceText == nil {
			return nil, fmt.Errorf("replace_text utility %q missing settings", u.Name)
		}
		return catalogue.NewReplaceTextOperation(u.Name, u.Description, u.Path, u.ReplaceText.Pattern, u.ReplaceText.Replacement)
	})

	register("copy_tree", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.CopyTree == nil {
			return nil, fmt.Errorf("copy_tree utility %q missing settings", u.Name)
		}
		return catalogue.NewCopyTreeOperation(u.Name, u.Description, u.Path, u.CopyTree.Destination, u.CopyTree.Overwrite), nil
	})

	register("run_command", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.RunCommand == nil {
			return nil, fmt.Errorf("run_command utility %q missing settings", u.Name)
		}
		timeout := time.Duration(u.RunCommand.TimeoutSecond) * time.Second
		return catalogue.NewRunCommandOperation(u.Name, u.Description, u.Path, u.RunCommand.Command, timeout), nil
	})

	register("git_clean", func(u config.Utility) (transform.TransformationUtility, error) {
		return catalogue.NewGitCleanCondition(u.Name, u.Description, u.Path), nil
	})

	register("git_commit", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.GitCommit == nil {
			return nil, fmt.Errorf("git_commit utility %q missing settings", u.Name)
		}
		return catalogue.NewGitCommitOperation(u.Name, u.Description, u.Path, u.GitCommit.Message, u.GitCommit.AuthorName, u.GitCommit.AuthorEmail), nil
	})

	register("list_files", func(u config.Utility) (transform.TransformationUtility, error) {
		pattern := ""
		if u.ListFiles != nil {
			pattern = u.ListFiles.NamePattern
		}
		return catalogue.NewListFilesUtility(u.Name, u.Description, u.Path, pattern)
	})

	register("file_contains", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.FileContains == nil {
			return nil, fmt.Errorf("file_contains utility %q missing settings", u.Name)
		}
		re, err := regexp.Compile(u.FileContains.Pattern)
		if err != nil {
			return nil, err
		}
		return catalogue.NewFileContainsCondition(u.Name, u.Description, u.Path, re), nil
	})

	register("scripted_condition", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.ScriptedCondition == nil {
			return nil, fmt.Errorf("scripted_condition utility %q missing settings", u.Name)
		}
		return catalogue.NewScriptedCondition(u.Name, u.Description, u.Path, u.ScriptedCondition.Script), nil
	})

	register("for_each_file", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.ForEachFile == nil || len(u.ForEachFile.Child) != 1 {
			return nil, fmt.Errorf("for_each_file utility %q requires exactly one child", u.Name)
		}
		var namePattern *regexp.Regexp
		if u.ForEachFile.NamePattern != "" {
			re, err := regexp.Compile(u.ForEachFile.NamePattern)
			if err != nil {
				return nil, err
			}
			namePattern = re
		}
		childSpec := u.ForEachFile.Child[0]
		newChild := func(file string) transform.TransformationUtility {
			spec := childSpec
			// file is relative to the loop's own root (u.Path), mirroring
			// content_fold.go's filepath.Join(m.RelativePath(), file) — a
			// bare spec.Path = file would drop that prefix and resolve the
			// child against workingDir instead of workingDir/u.Path.
			spec.Path = filepath.Join(u.Path, file)
			spec.Name = fmt.Sprintf("%s[%s]", childSpec.Name, file)
			tu, err := Build(spec)
			if err != nil {
				return catalogue.NewFailingUtility(spec.Name, err)
			}
			return tu
		}
		return catalogue.NewForEachFileLoop(u.Name, u.Description, u.Path, namePattern, newChild), nil
	})

	register("multiple_conditions", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.MultipleConditions == nil {
			return nil, fmt.Errorf("multiple_conditions utility %q missing settings", u.Name)
		}
		var subtree *regexp.Regexp
		if u.MultipleConditions.SubtreePattern != "" {
			re, err := regexp.Compile(u.MultipleConditions.SubtreePattern)
			if err != nil {
				return nil, err
			}
			subtree = re
		}
		content, err := regexp.Compile(u.MultipleConditions.ContentPattern)
		if err != nil {
			return nil, err
		}
		mode := transform.ConditionAll
		if u.MultipleConditions.Mode == "ANY" {
			mode = transform.ConditionAny
		}
		return catalogue.NewFileContentMultipleCondition(u.Name, u.Description, u.Path, subtree, content, mode), nil
	})

	register("filter_files", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.FilterFiles == nil {
			return nil, fmt.Errorf("filter_files utility %q missing settings", u.Name)
		}
		var subtree *regexp.Regexp
		if u.FilterFiles.SubtreePattern != "" {
			re, err := regexp.Compile(u.FilterFiles.SubtreePattern)
			if err != nil {
				return nil, err
			}
			subtree = re
		}
		content, err := regexp.Compile(u.FilterFiles.ContentPattern)
		if err != nil {
			return nil, err
		}
		return catalogue.NewFileContentFilterFiles(u.Name, u.Description, u.Path, subtree, content), nil
	})

	register("manual_instruction", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.ManualInstruction == nil {
			return nil, fmt.Errorf("manual_instruction utility %q missing settings", u.Name)
		}
		return catalogue.NewRecordManualStepUtility(u.Name, u.Description, u.ManualInstruction.Text), nil
	})

	register("unified_diff", func(u config.Utility) (transform.TransformationUtility, error) {
		if u.UnifiedDiff == nil {
			return nil, fmt.Errorf("unified_diff utility %q missing settings", u.Name)
		}
		original, err := os.ReadFile(u.UnifiedDiff.OriginalPath)
		if err != nil {
			return nil, err
		}
		return catalogue.NewUnifiedDiffUtility(u.Name, u.Description, u.Path, original), nil
	})
}
