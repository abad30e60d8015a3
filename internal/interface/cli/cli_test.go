package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	infraConfig "github.com/YoshitsuguKoike/docrev/internal/infra/config"
)

// longDoc is long enough to earn full attribution
var longDoc = "# 설치 가이드\n\n" + strings.Repeat("이 문서는 설치 절차를 설명합니다. ", 12) + "\n\n## 준비\n\n- Go 1.24\n- git\n"

const shortDoc = "# 메모\n\n첫 줄\n\n둘째 줄\n"

// isolateConfig points the settings lookup at an empty temp dir
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(infraConfig.EnvHome, home)
	t.Setenv(infraConfig.EnvModel, "")
	t.Setenv(infraConfig.EnvProduct, "")
	t.Setenv(infraConfig.EnvLanguage, "")
	return home
}

// runCLI executes the root command and returns stdout and stderr
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRoot()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
