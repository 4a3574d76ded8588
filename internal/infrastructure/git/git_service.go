package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/logger"
	"github.com/Tomas-vilte/issuegate/internal/regex"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const originRemote = "origin"

var _ ports.GitService = (*GitService)(nil)

type GitService struct {
	repo *git.Repository
	path string
}

// NewGitService opens the repository containing path, walking up to find .git.
func NewGitService(path string) (*GitService, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, appErrors.ErrNotInGitRepo.WithContext("path", path)
		}
		return nil, appErrors.ErrNotInGitRepo.WithError(err).WithContext("path", path)
	}
	return &GitService{repo: repo, path: path}, nil
}

// ReadCommit resolves revision and returns the commit with the repository
// name and the ref it was read from.
func (s *GitService) ReadCommit(ctx context.Context, revision string) (models.Commit, error) {
	if revision == "" {
		revision = "HEAD"
	}

	hash, err := s.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		if revision == "HEAD" {
			return models.Commit{}, appErrors.ErrGetHead.WithError(err).WithContext("path", s.path)
		}
		return models.Commit{}, appErrors.ErrCommitNotFound.WithError(err).WithContext("revision", revision)
	}

	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return models.Commit{}, appErrors.ErrCommitNotFound.WithError(err).WithContext("revision", revision)
	}

	repository, err := s.RepositoryName()
	if err != nil {
		return models.Commit{}, err
	}

	ref := s.refFor(ctx, revision)
	logger.Debug(ctx, "commit read", "commit", commit.Hash.String(), "ref", ref, "repository", repository)

	return models.Commit{
		Repository: repository,
		Ref:        ref,
		ID:         commit.Hash.String(),
		Message:    commit.Message,
	}, nil
}

// RepositoryName returns "owner/repo" taken from the origin remote, or the
// worktree directory name when there is no usable remote.
func (s *GitService) RepositoryName() (string, error) {
	if remote, err := s.repo.Remote(originRemote); err == nil {
		for _, url := range remote.Config().URLs {
			if owner, name, ok := parseRepoURL(url); ok {
				return owner + "/" + name, nil
			}
		}
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return "", appErrors.ErrExtractRepoInfo.WithError(err).WithContext("path", s.path)
	}
	return filepath.Base(wt.Filesystem.Root()), nil
}

// refFor names the ref the revision was taken from. Branch names map to
// refs/heads/*, HEAD maps to the checked-out branch, anything else is
// reported as is.
func (s *GitService) refFor(ctx context.Context, revision string) string {
	if revision == "HEAD" {
		head, err := s.repo.Head()
		if err != nil {
			logger.Debug(ctx, "could not resolve HEAD", "error", err)
			return revision
		}
		if head.Name().IsBranch() {
			return head.Name().String()
		}
		return revision
	}

	if strings.HasPrefix(revision, "refs/") {
		return revision
	}
	if _, err := s.repo.Reference(plumbing.NewBranchReferenceName(revision), false); err == nil {
		return plumbing.NewBranchReferenceName(revision).String()
	}
	return revision
}

func parseRepoURL(url string) (string, string, bool) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		return matches[2], strings.TrimSuffix(matches[3], ".git"), true
	}
	return "", "", false
}

