package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/docrev/internal/application/dto"
	"github.com/YoshitsuguKoike/docrev/internal/application/usecase"
)

// hookPayload is the subset of the agent's post-tool-use JSON we read
type hookPayload struct {
	ToolName  string `json:"tool_name"`
	Cwd       string `json:"cwd"`
	ToolInput struct {
		FilePath string `json:"file_path"`
	} `json:"tool_input"`
}

// readHookPayload extracts the written file from a hook payload. A relative
// file_path is resolved against the payload's cwd, or dir when it has none.
func readHookPayload(r io.Reader, dir string) (string, error) {
	var p hookPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("failed to decode hook payload: %w", err)
	}
	if p.ToolInput.FilePath == "" {
		return "", nil
	}
	base := dir
	if p.Cwd != "" {
		base = p.Cwd
	}
	return resolvePath(base, p.ToolInput.FilePath), nil
}

func newHookCmd() *cobra.Command {
	var flags patchFlags
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "hook [files...]",
		Short: "Patch files after an agent writes them",
		Long: `Hook records a revision in every markdown file given. The description is
derived from version control status: staged new files are "초안 작성",
modified files "내용 수정", renamed files "파일 이름 변경" and anything
else "문서 수정". Non-markdown and missing files are skipped.

With --stdin the file is read from the post-tool-use hook JSON payload
(tool_input.file_path).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]string, 0, len(args))
			for _, a := range args {
				paths = append(paths, resolvePath(rootOpts.dir, a))
			}
			if fromStdin {
				p, err := readHookPayload(cmd.InOrStdin(), rootOpts.dir)
				if err != nil {
					return err
				}
				if p != "" {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				if fromStdin {
					Debug("hook payload names no file")
					return nil
				}
				return errors.New("no files given")
			}

			deps := newPatchDeps(rootOpts.dir)
			batch := usecase.NewBatchPatchUseCase(deps.uc)
			out := batch.Execute(cmd.Context(), paths, dto.PatchFileInput{
				Mode:   dto.PatchModeRevision,
				Stage:  flags.shouldStage(cmd),
				DryRun: flags.dryRun,
			})

			for _, res := range out.Results {
				reportResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, msgHookDone, false)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n총 %d개 파일에 작성자 정보 및 수정 이력을 추가했습니다.\n", out.Count(dto.OutcomePatched))

			if out.HasFailures() {
				return &errFilesFailed{count: out.Count(dto.OutcomeFailed)}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the file path from a hook JSON payload on stdin")
	return cmd
}
