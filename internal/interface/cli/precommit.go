package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/docrev/internal/application/dto"
	"github.com/YoshitsuguKoike/docrev/internal/application/usecase"
	"github.com/YoshitsuguKoike/docrev/internal/infrastructure/vcs"
)

const hookShellScript = `#!/bin/sh
# Installed by docrev: adds document info to staged markdown files
exec docrev pre-commit
`

func newPreCommitCmd() *cobra.Command {
	var install bool
	var revision bool

	cmd := &cobra.Command{
		Use:   "pre-commit",
		Short: "Add document info to staged markdown files",
		Long: `Pre-commit checks every staged markdown file (added, copied or modified)
and appends the document info block to those that lack one, then stages
the result again. With --revision a revision row is recorded as well.

Run with --install once to write the pre-commit hook into the repository's
hooks directory (core.hooksPath when set). An existing hook is never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if install {
				return installPreCommitHook(cmd, rootOpts.dir)
			}

			deps := newPatchDeps(rootOpts.dir)
			staged, err := deps.vcs.StagedFiles(cmd.Context())
			if err != nil {
				return err
			}

			var files []string
			for _, f := range staged {
				if hasExtension(f, globalConfig.Extensions()) {
					files = append(files, f)
				}
			}
			if len(files) == 0 {
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📝 %d개의 마크다운 파일을 검사합니다...\n", len(files))

			mode := dto.PatchModeInfoOnly
			if revision {
				mode = dto.PatchModeRevision
			}
			batch := usecase.NewBatchPatchUseCase(deps.uc)
			result := batch.Execute(cmd.Context(), files, dto.PatchFileInput{Mode: mode, Stage: true})

			for _, res := range result.Results {
				switch {
				case res.Outcome == dto.OutcomePatched && mode == dto.PatchModeInfoOnly:
					fmt.Fprintf(out, "  + %s: 작성자 정보 추가\n", displayPath(rootOpts.dir, res.Path))
				case res.Outcome == dto.OutcomePatched:
					fmt.Fprintf(out, "  + %s: 수정 이력 기록 (버전 %s)\n", displayPath(rootOpts.dir, res.Path), res.Version)
				case res.Outcome == dto.OutcomeFailed:
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: 오류 - %v\n", displayPath(rootOpts.dir, res.Path), res.Err)
				}
			}

			if n := result.Count(dto.OutcomePatched); n > 0 {
				fmt.Fprintf(out, "\n✓ %d개 파일에 작성자/리뷰어 정보를 추가했습니다.\n", n)
			}
			if result.HasFailures() {
				return &errFilesFailed{count: result.Count(dto.OutcomeFailed)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "Install the git pre-commit hook")
	cmd.Flags().BoolVar(&revision, "revision", false, "Also record a revision row in each staged file")
	return cmd
}

// installPreCommitHook writes the pre-commit hook unless one exists
func installPreCommitHook(cmd *cobra.Command, dir string) error {
	repo, err := vcs.Open(dir)
	if err != nil {
		return err
	}
	g, ok := repo.(*vcs.GoGitVCS)
	if !ok {
		return fmt.Errorf("%s is not inside a git repository", dir)
	}

	hooks, err := g.HooksDir()
	if err != nil {
		return err
	}
	hookPath := filepath.Join(hooks, "pre-commit")
	if _, err := os.Stat(hookPath); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", hookPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(hooks, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(hookPath, []byte(hookShellScript), 0o755); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", hookPath)
	return nil
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// displayPath shows path relative to dir when it lives below it
func displayPath(dir, path string) string {
	base, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
