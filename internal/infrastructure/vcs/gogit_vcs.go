// Implements output.VCS using go-git (pure Go, no git binary dependency).

package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/YoshitsuguKoike/docrev/internal/application/port/output"
)

// GoGitVCS implements output.VCS on top of a go-git repository
type GoGitVCS struct {
	root string
	repo *gogit.Repository
	mu   sync.Mutex
}

// Open returns a VCS for the repository containing dir. Outside a
// repository it returns a NoopVCS.
func Open(dir string) (output.VCS, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return NoopVCS{}, nil
		}
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return newGoGitVCS(repo)
}

func newGoGitVCS(repo *gogit.Repository) (*GoGitVCS, error) {
	w, err := repo.Worktree()
	if err != nil {
		// Bare repositories have nothing to patch
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	return &GoGitVCS{root: canonical(w.Filesystem.Root()), repo: repo}, nil
}

// Root returns the absolute worktree root
func (v *GoGitVCS) Root() string {
	return v.root
}

// Status classifies path the way `git status --porcelain` would:
// "A " is added, "M " or " M" is modified, "R " is renamed.
func (v *GoGitVCS) Status(_ context.Context, path string) (output.ChangeKind, error) {
	rel, err := v.relative(path)
	if err != nil {
		return output.ChangeUnknown, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	st, err := v.status()
	if err != nil {
		return output.ChangeUnknown, err
	}
	fs, ok := st[rel]
	if !ok {
		return output.ChangeUnknown, nil
	}

	switch {
	case fs.Staging == gogit.Added && fs.Worktree == gogit.Unmodified:
		return output.ChangeAdded, nil
	case fs.Staging == gogit.Modified && fs.Worktree == gogit.Unmodified,
		fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Modified:
		return output.ChangeModified, nil
	case fs.Staging == gogit.Renamed && fs.Worktree == gogit.Unmodified:
		return output.ChangeRenamed, nil
	default:
		return output.ChangeUnknown, nil
	}
}

// StagedFiles lists files whose index entry is added, copied or modified,
// sorted, as absolute paths
func (v *GoGitVCS) StagedFiles(_ context.Context) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	st, err := v.status()
	if err != nil {
		return nil, err
	}

	var files []string
	for rel, fs := range st {
		switch fs.Staging {
		case gogit.Added, gogit.Copied, gogit.Modified:
			files = append(files, filepath.Join(v.root, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Stage adds the current content of path to the index
func (v *GoGitVCS) Stage(_ context.Context, path string) error {
	rel, err := v.relative(path)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	w, err := v.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(rel); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}
	return nil
}

// HooksDir returns the directory git runs hooks from: core.hooksPath when
// set, otherwise "hooks" in the shared git directory. This follows a ".git"
// file to the real git directory (submodules) and "commondir" from a linked
// worktree to the main repository.
func (v *GoGitVCS) HooksDir() (string, error) {
	cfg, err := v.repo.Config()
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}
	if hp := cfg.Raw.Section("core").Option("hooksPath"); hp != "" {
		if !filepath.IsAbs(hp) {
			hp = filepath.Join(v.root, hp)
		}
		return hp, nil
	}

	st, ok := v.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository at %s has no git directory", v.root)
	}
	return filepath.Join(commonDir(st.Filesystem().Root()), "hooks"), nil
}

// commonDir resolves the "commondir" pointer a linked worktree's git directory carries
func commonDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}
	common := strings.TrimSpace(string(data))
	if common == "" {
		return gitDir
	}
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common)
}

func (v *GoGitVCS) status() (gogit.Status, error) {
	w, err := v.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	st, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}
	return st, nil
}

// relative converts path to a slash separated path inside the worktree
func (v *GoGitVCS) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Join(canonical(filepath.Dir(abs)), filepath.Base(abs))
	rel, err := filepath.Rel(v.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", path, v.root)
	}
	return filepath.ToSlash(rel), nil
}

// canonical resolves symlinks when possible so temp dirs compare equal
func canonical(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}

// NoopVCS is used outside a repository: nothing is staged and every status is unknown
type NoopVCS struct{}

func (NoopVCS) Status(context.Context, string) (output.ChangeKind, error) {
	return output.ChangeUnknown, nil
}

func (NoopVCS) StagedFiles(context.Context) ([]string, error) {
	return nil, nil
}

func (NoopVCS) Stage(context.Context, string) error {
	return nil
}
