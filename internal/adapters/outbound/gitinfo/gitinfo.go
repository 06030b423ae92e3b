package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Revision identifies the checked-out source a report was generated from.
type Revision struct {
	Hash   string `json:"hash"`
	Short  string `json:"short"`
	Branch string `json:"branch,omitempty"`
}

// Resolver implements domain.CommitResolver using go-git. The repository is
// looked up from projectPath upwards.
type Resolver struct{}

func New() *Resolver {
	return &Resolver{}
}

func (r *Resolver) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// Revision returns HEAD's hash and, when HEAD is a branch, its short name.
func (r *Resolver) Revision(projectPath string) (Revision, error) {
	repo, err := open(projectPath)
	if err != nil {
		return Revision{}, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return Revision{}, fmt.Errorf("getting HEAD: %w", err)
	}

	rev := Revision{Hash: head.Hash().String()}
	rev.Short = rev.Hash[:7]
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}

func (r *Resolver) CommitHash(projectPath string) (string, error) {
	rev, err := r.Revision(projectPath)
	if err != nil {
		return "", err
	}
	return rev.Hash, nil
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}
