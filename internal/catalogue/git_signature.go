package catalogue

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

func authorSignature(name, email string) *object.Signature {
	if name == "" {
		name = "codemod"
	}
	if email == "" {
		email = "codemod@localhost"
	}
	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}
