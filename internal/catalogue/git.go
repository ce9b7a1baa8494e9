package catalogue

import (
	"fmt"

	git "github.com/go-git/go-git/v5"

	"github.com/codeforge/codemod/internal/model"
	"github.com/codeforge/codemod/internal/transform"
)

// GitCleanCondition reports whether the staged application's working tree
// (itself a git repository, if the source application was) is clean —
// useful as a gate before a destructive rewrite operation. Grounded on the
// teacher's repo plugin's use of go-git to open and inspect a repository.
type GitCleanCondition struct {
	transform.BaseUtility
}

func NewGitCleanCondition(name, description, relativePath string) *GitCleanCondition {
	return &GitCleanCondition{BaseUtility: transform.NewBaseUtility(name, description, relativePath)}
}

func (c *GitCleanCondition) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	repoPath := c.AbsolutePath(workingDir)

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return model.NewUtilWarning(model.BoolValue(false), repoPath+" is not a git repository"), nil
		}
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, transform.NewTransformationUtilityException(c.Name(), err)
	}

	return model.NewUtilValue(model.BoolValue(status.IsClean())), nil
}

// GitCommitOperation stages every pending change and commits it, letting a
// recipe checkpoint the staged tree between migration steps.
type GitCommitOperation struct {
	transform.BaseUtility
	transform.OperationMixin

	Message     string
	AuthorName  string
	AuthorEmail string
}

func NewGitCommitOperation(name, description, relativePath, message, authorName, authorEmail string) *GitCommitOperation {
	return &GitCommitOperation{
		BaseUtility: transform.NewBaseUtility(name, description, relativePath),
		Message:     message,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
	}
}

func (op *GitCommitOperation) Execute(workingDir string, ctx *transform.TransformationContext) (model.ExecutionResult, error) {
	repoPath := op.AbsolutePath(workingDir)

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}
	if status.IsClean() {
		return model.NewOpNoOp("nothing to commit"), nil
	}

	if _, err := worktree.Add("."); err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	hash, err := worktree.Commit(op.Message, &git.CommitOptions{
		Author: authorSignature(op.AuthorName, op.AuthorEmail),
	})
	if err != nil {
		return nil, transform.NewTransformationUtilityException(op.Name(), err)
	}

	return model.NewOpSuccess(fmt.Sprintf("committed %s as %s", hash.String(), op.Message)), nil
}
