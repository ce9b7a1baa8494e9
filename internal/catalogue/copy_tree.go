package catalogue

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// CopyTreeOperation copies a directory subtree (or single file) from one
// relative location to another inside the staged application, the
// recipe-facing equivalent of the teacher's copy plugin.
type CopyTreeOperation struct {
	transform.BaseUtility
	transform.OperationMixin

	DestinationPath string
	Overwrite       bool
}

func NewCopyTreeOperation(name, description, sourceRelativePath, destinationRelativePath string, overwrite bool) *CopyTreeOperation {
	return &CopyTreeOperation{
		BaseUtility:     transform.NewBaseUtility(name, description, sourceRelativePath),
		DestinationPath: destinationRelativePath,
		Overwrite:       overwrite,
	}
}

func (op *CopyTreeOperation) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	src := op.AbsolutePath(workingDir)
	dst := filepath.Join(workingDir, op.DestinationPath)

	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	if !op.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return model.NewOpNoOp(fmt.Sprintf("%s already exists, overwrite disabled", dst)), nil
		}
	}

	copied := 0
	walkErr := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if rel == "." {
				return os.MkdirAll(target, srcInfo.Mode().Perm())
			}
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if walkErr != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), walkErr)
	}

	return model.NewOpSuccess(fmt.Sprintf("copied %d file(s) from %s to %s", copied, src, dst)), nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
