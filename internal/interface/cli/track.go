package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/docrev/internal/application/dto"
)

// patchFlags are shared by the commands that patch named files
type patchFlags struct {
	dryRun bool
	stage  bool
}

func (f *patchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Compute the patch without writing the file")
	cmd.Flags().BoolVar(&f.stage, "stage", false, "Re-stage the file after writing (default from settings)")
}

// shouldStage resolves --stage against the configured default
func (f *patchFlags) shouldStage(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("stage") {
		return f.stage
	}
	return globalConfig.Stage()
}

func newTrackCmd() *cobra.Command {
	var flags patchFlags

	cmd := &cobra.Command{
		Use:   "track <file.md> <description> [reviewer]",
		Short: "Record one revision in a markdown document",
		Long: `Track adds a row to the document's revision history table with the
next version, today's date, the description and the reviewer, then updates
the document info block to match.

Examples:
  docrev track README.md "초안 작성"
  docrev track README.md "API 섹션 추가" drake`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &dto.PatchFileInput{
				Path:        resolvePath(rootOpts.dir, args[0]),
				Description: args[1],
				Mode:        dto.PatchModeRevision,
				Stage:       flags.shouldStage(cmd),
				DryRun:      flags.dryRun,
			}
			if len(args) > 2 {
				in.Reviewer = args[2]
			}
			if in.Description == "" {
				return errors.New("description must not be empty")
			}

			deps := newPatchDeps(rootOpts.dir)
			res := deps.uc.Execute(cmd.Context(), in)
			return reportTrack(cmd, res, flags.dryRun)
		},
	}

	flags.register(cmd)
	return cmd
}

func reportTrack(cmd *cobra.Command, res *dto.PatchFileResult, dryRun bool) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch res.Outcome {
	case dto.OutcomeSkipped:
		switch res.Reason {
		case dto.SkipNotFound, dto.SkipDirectory:
			fmt.Fprintf(errOut, "✗ 오류: 파일을 찾을 수 없습니다: %s\n", res.Path)
			return fmt.Errorf("%s: file not found", res.Path)
		case dto.SkipWrongExtension:
			return fmt.Errorf("%s: not a markdown document", res.Path)
		default:
			Warn("%s: skipped (%s)", res.Path, res.Reason)
			return nil
		}
	case dto.OutcomeFailed:
		reportResult(out, errOut, res, msgTrackDone, true)
		return &errFilesFailed{count: 1}
	}

	if dryRun {
		fmt.Fprint(out, res.Content)
		return nil
	}
	reportResult(out, errOut, res, msgTrackDone, true)
	return nil
}
