package catalogue

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// ListFilesUtility walks a subtree and produces the FileSet of paths
// (relative to the staged application root) matching an optional regular
// expression, the building block MultipleConditions/FilterFiles/loops draw
// their candidate set from.
type ListFilesUtility struct {
	transform.BaseUtility

	NamePattern *regexp.Regexp
}

func NewListFilesUtility(name, description, relativePath, namePattern string) (*ListFilesUtility, error) {
	var re *regexp.Regexp
	if namePattern != "" {
		compiled, err := regexp.Compile(namePattern)
		if err != nil {
			return nil, err
		}
		re = compiled
	}
	return &ListFilesUtility{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		NamePattern: re,
	}, nil
}

func (u *ListFilesUtility) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	root := u.AbsolutePath(workingDir)

	files, err := listFiles(root, u.NamePattern)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(u.Name(), err)
	}
	return model.NewUtilValue(model.FileSetValue(files)), nil
}

func listFiles(root string, namePattern *regexp.Regexp) (model.FileSet, error) {
	var fs model.FileSet
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if namePattern != nil && !namePattern.MatchString(rel) {
			return nil
		}
		fs.Add(rel)
		return nil
	})
	if err != nil {
		return model.FileSet{}, err
	}
	return fs, nil
}
