package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/docrev/internal/app"
	"github.com/YoshitsuguKoike/docrev/internal/app/config"
	"github.com/YoshitsuguKoike/docrev/internal/application/dto"
	"github.com/YoshitsuguKoike/docrev/internal/application/port/output"
	"github.com/YoshitsuguKoike/docrev/internal/application/usecase"
	"github.com/YoshitsuguKoike/docrev/internal/domain/service"
	"github.com/YoshitsuguKoike/docrev/internal/infrastructure/vcs"
)

// patchDeps bundles what the patch commands share
type patchDeps struct {
	fs  afero.Fs
	vcs output.VCS
	uc  *usecase.PatchFileUseCase
}

// newPatchDeps wires the patch use case for dir using the loaded configuration
func newPatchDeps(dir string) *patchDeps {
	fs := afero.NewOsFs()

	repo, err := vcs.Open(dir)
	if err != nil {
		Warn("%v, continuing without version control", err)
		repo = vcs.NoopVCS{}
	}

	var journal output.PatchJournal
	if path := globalConfig.JournalPath(); path != "" {
		journal = app.NewJournalWriter(fs, path)
	}

	patcher := service.NewMetadataPatcher(config.PatcherConfig(globalConfig))
	return &patchDeps{
		fs:  fs,
		vcs: repo,
		uc:  usecase.NewPatchFileUseCase(fs, patcher, repo, journal, globalConfig.Extensions()),
	}
}

// resolvePath interprets relative paths against dir
func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" || dir == "." {
		return path
	}
	return filepath.Join(dir, path)
}

// Completion messages per command
const (
	msgHookDone  = "작성자 정보 및 수정 이력 추가 완료"
	msgTrackDone = "수정 이력 기록 완료"
)

// reportResult prints one file's outcome. done is the success message;
// verbose adds the description line.
func reportResult(out, errOut io.Writer, res *dto.PatchFileResult, done string, verbose bool) {
	switch res.Outcome {
	case dto.OutcomePatched:
		fmt.Fprintf(out, "✓ %s: %s\n", res.Path, done)
		fmt.Fprintf(out, "  버전: %s, 일자: %s, 리뷰어: %s\n", res.Version, res.Date, res.Reviewer)
		if verbose && res.Description != "" {
			fmt.Fprintf(out, "  설명: %s\n", res.Description)
		}
	case dto.OutcomeFailed:
		fmt.Fprintf(errOut, "✗ %s: 오류 - %v\n", res.Path, res.Err)
	case dto.OutcomeSkipped:
		Info("%s: skipped (%s)", res.Path, res.Reason)
	}
}

// errFilesFailed is returned when at least one file in a batch failed
type errFilesFailed struct {
	count int
}

func (e *errFilesFailed) Error() string {
	return fmt.Sprintf("%d file(s) failed", e.count)
}
