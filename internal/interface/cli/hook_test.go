package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookCmd_Files(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.md", longDoc)
	txt := writeDoc(t, dir, "b.txt", longDoc)
	missing := filepath.Join(dir, "missing.md")

	stdout, _, err := runCLI(t, "", "-C", dir, "hook", doc, txt, missing)
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ "+doc+": 작성자 정보 및 수정 이력 추가 완료")
	assert.Contains(t, stdout, "총 1개 파일에 작성자 정보 및 수정 이력을 추가했습니다.")
	assert.NotContains(t, stdout, "b.txt")

	// Outside a repository the description falls back to the default
	assert.Contains(t, readDoc(t, doc), "| 1.0 | 문서 수정 | drake |")
	assert.Equal(t, longDoc, readDoc(t, txt))
}

func TestHookCmd_Stdin(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "notes/a.md", longDoc)

	payload := fmt.Sprintf(`{"tool_name":"Write","cwd":%q,"tool_input":{"file_path":"notes/a.md","content":"..."}}`, dir)
	stdout, _, err := runCLI(t, payload, "hook", "--stdin")
	require.NoError(t, err)

	assert.Contains(t, stdout, "총 1개 파일")
	assert.Contains(t, readDoc(t, doc), "## 📝 문서 정보")
}

func TestHookCmd_StdinWithoutCwd(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "notes/a.md", longDoc)

	payload := `{"tool_name":"Write","tool_input":{"file_path":"notes/a.md"}}`
	stdout, _, err := runCLI(t, payload, "-C", dir, "hook", "--stdin")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ "+doc+":")
	assert.Contains(t, readDoc(t, doc), "## 📝 문서 정보")
}

func TestHookCmd_StdinWithoutFile(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := runCLI(t, `{"tool_name":"Bash","tool_input":{"command":"ls"}}`, "hook", "--stdin")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	_, _, err = runCLI(t, "not json", "hook", "--stdin")
	assert.Error(t, err)
}

func TestHookCmd_NoFiles(t *testing.T) {
	isolateConfig(t)
	_, _, err := runCLI(t, "", "hook")
	assert.Error(t, err)
}

func TestHookCmd_DryRun(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.md", longDoc)

	stdout, _, err := runCLI(t, "", "hook", "--dry-run", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "총 1개 파일")
	assert.Equal(t, longDoc, readDoc(t, doc))
}

func TestReadHookPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		dir     string
		want    string
		wantErr bool
	}{
		{"absolute path", `{"cwd":"/repo","tool_input":{"file_path":"/x/a.md"}}`, "/base", "/x/a.md", false},
		{"relative to cwd", `{"cwd":"/repo","tool_input":{"file_path":"docs/a.md"}}`, "/base", filepath.Join("/repo", "docs/a.md"), false},
		{"relative cwd resolved once", `{"cwd":"sub","tool_input":{"file_path":"docs/a.md"}}`, "/base", filepath.Join("sub", "docs/a.md"), false},
		{"no cwd falls back to dir", `{"tool_input":{"file_path":"docs/a.md"}}`, "/base", filepath.Join("/base", "docs/a.md"), false},
		{"no cwd and no dir", `{"tool_input":{"file_path":"docs/a.md"}}`, "", "docs/a.md", false},
		{"no file", `{"tool_input":{}}`, "/base", "", false},
		{"empty input", ``, "/base", "", false},
		{"invalid", `{`, "/base", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readHookPayload(strings.NewReader(tt.payload), tt.dir)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
