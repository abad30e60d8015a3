package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/docrev/internal/app"
	"github.com/YoshitsuguKoike/docrev/internal/application/dto"
	"github.com/YoshitsuguKoike/docrev/internal/application/port/output"
	"github.com/YoshitsuguKoike/docrev/internal/domain/service"
	"github.com/YoshitsuguKoike/docrev/internal/infra/persistence/file"
)

// Change descriptions derived from version control status
const (
	DescriptionDraft   = "초안 작성"
	DescriptionUpdate  = "내용 수정"
	DescriptionRenamed = "파일 이름 변경"
	DescriptionDefault = "문서 수정"
)

// DescribeChange maps a version control status to a revision description
func DescribeChange(kind output.ChangeKind) string {
	switch kind {
	case output.ChangeAdded:
		return DescriptionDraft
	case output.ChangeModified:
		return DescriptionUpdate
	case output.ChangeRenamed:
		return DescriptionRenamed
	default:
		return DescriptionDefault
	}
}

// PatchFileUseCase reads a document, patches it and writes it back
type PatchFileUseCase struct {
	FS         afero.Fs
	Patcher    *service.MetadataPatcher
	VCS        output.VCS          // Optional
	Journal    output.PatchJournal // Optional
	Extensions []string            // Accepted file extensions, ".md" when empty
}

// NewPatchFileUseCase creates a new patch file use case
func NewPatchFileUseCase(fs afero.Fs, patcher *service.MetadataPatcher, vcs output.VCS, journal output.PatchJournal, extensions []string) *PatchFileUseCase {
	return &PatchFileUseCase{
		FS:         fs,
		Patcher:    patcher,
		VCS:        vcs,
		Journal:    journal,
		Extensions: extensions,
	}
}

// Execute patches one file. Problems never escape as errors: they come back
// as a skipped or failed result so a batch can carry on.
func (uc *PatchFileUseCase) Execute(ctx context.Context, in *dto.PatchFileInput) *dto.PatchFileResult {
	res := &dto.PatchFileResult{Path: in.Path}
	logger := app.GetLogger()

	if !uc.acceptsExtension(in.Path) {
		return skipped(res, dto.SkipWrongExtension)
	}

	info, err := uc.FS.Stat(in.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return skipped(res, dto.SkipNotFound)
		}
		return failed(res, fmt.Errorf("failed to stat: %w", err))
	}
	if info.IsDir() {
		return skipped(res, dto.SkipDirectory)
	}

	data, perm, err := file.ReadDocument(uc.FS, in.Path)
	if err != nil {
		return failed(res, err)
	}
	original := string(data)

	mode := in.Mode
	if mode == "" {
		mode = dto.PatchModeRevision
	}
	opts := service.PatchOptions{Reviewer: in.Reviewer}

	var patched service.PatchResult
	switch mode {
	case dto.PatchModeInfoOnly:
		if uc.Patcher.HasInfo(original) {
			return skipped(res, dto.SkipHasInfo)
		}
		patched = uc.Patcher.EnsureInfo(original, opts)
	case dto.PatchModeRevision:
		res.Description = in.Description
		if res.Description == "" {
			res.Description = uc.describe(ctx, in.Path)
		}
		patched = uc.Patcher.Patch(original, res.Description, opts)
	default:
		return failed(res, fmt.Errorf("unknown patch mode %q", mode))
	}

	if patched.Skipped {
		logger.Debug("%s: skipped, fewer than %d lines", in.Path, uc.Patcher.Config.MinLines)
		return skipped(res, dto.SkipTooShort)
	}

	res.Version = patched.Version
	res.Date = patched.Date
	res.Reviewer = patched.Reviewer
	res.Content = patched.Text

	if in.DryRun {
		res.Outcome = dto.OutcomePatched
		return res
	}

	if err := file.WriteFileAtomic(uc.FS, in.Path, []byte(patched.Text), perm); err != nil {
		return failed(res, err)
	}

	if in.Stage && uc.VCS != nil {
		if err := uc.VCS.Stage(ctx, in.Path); err != nil {
			return failed(res, fmt.Errorf("written but not staged: %w", err))
		}
		res.Staged = true
	}

	if uc.Journal != nil {
		rec := &output.PatchRecord{
			Path:        in.Path,
			Action:      string(mode),
			Version:     patched.Version,
			Date:        patched.Date,
			Description: res.Description,
			Reviewer:    patched.Reviewer,
		}
		if err := uc.Journal.Append(rec); err != nil {
			logger.Warn("%s: failed to append journal: %v", in.Path, err)
		}
	}

	res.Outcome = dto.OutcomePatched
	return res
}

func (uc *PatchFileUseCase) describe(ctx context.Context, path string) string {
	if uc.VCS == nil {
		return DescriptionDefault
	}
	kind, err := uc.VCS.Status(ctx, path)
	if err != nil {
		app.GetLogger().Debug("%s: status unavailable: %v", path, err)
		return DescriptionDefault
	}
	return DescribeChange(kind)
}

func (uc *PatchFileUseCase) acceptsExtension(path string) bool {
	exts := uc.Extensions
	if len(exts) == 0 {
		exts = []string{".md"}
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func skipped(res *dto.PatchFileResult, reason dto.SkipReason) *dto.PatchFileResult {
	res.Outcome = dto.OutcomeSkipped
	res.Reason = reason
	return res
}

func failed(res *dto.PatchFileResult, err error) *dto.PatchFileResult {
	res.Outcome = dto.OutcomeFailed
	res.Err = err
	return res
}

// BatchPatchUseCase patches several files one after another
type BatchPatchUseCase struct {
	Single *PatchFileUseCase
}

// NewBatchPatchUseCase creates a new batch use case
func NewBatchPatchUseCase(single *PatchFileUseCase) *BatchPatchUseCase {
	return &BatchPatchUseCase{Single: single}
}

// Execute patches paths sequentially with the same settings. A failed file
// is recorded and the loop moves on.
func (uc *BatchPatchUseCase) Execute(ctx context.Context, paths []string, tmpl dto.PatchFileInput) *dto.BatchPatchResult {
	out := &dto.BatchPatchResult{}
	for _, p := range paths {
		in := tmpl
		in.Path = p
		out.Results = append(out.Results, uc.Single.Execute(ctx, &in))
	}
	return out
}
