package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigCmd(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolateConfig(t)

		stdout, _, err := runCLI(t, "", "config")
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "default", got["source"])
		assert.Equal(t, "drake", got["reviewer"])
		assert.Equal(t, "## 3. 수정 이력", got["revision_heading"])
	})

	t.Run("settings file and environment", func(t *testing.T) {
		home := isolateConfig(t)
		writeDoc(t, home, "setting.yaml", "reviewer: alice\nstage: true\n")
		t.Setenv("MOAI_LANGUAGE", "English")

		stdout, _, err := runCLI(t, "", "config")
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "yaml", got["source"])
		assert.Equal(t, filepath.Join(home, "setting.yaml"), got["setting_path"])
		assert.Equal(t, "alice", got["reviewer"])
		assert.Equal(t, true, got["stage"])
		assert.Equal(t, "MoAI-ADK v11.0.0 (Claude Code + English)", got["rendered_environment"])
	})

	t.Run("settings reviewer reaches the patch", func(t *testing.T) {
		home := isolateConfig(t)
		writeDoc(t, home, "setting.yaml", "reviewer: carol\n")
		path := writeDoc(t, t.TempDir(), "a.md", longDoc)

		_, _, err := runCLI(t, "", "track", path, "초안 작성")
		require.NoError(t, err)
		assert.Contains(t, readDoc(t, path), "| 1.0 | 초안 작성 | carol |")
	})
}

func TestLogLevelFromString(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"":        LogLevelWarn,
		"bogus":   LogLevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, LogLevelFromString(in), in)
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelInfo, &buf)
	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)
	l.Error("bad %s", "x")

	assert.Equal(t, "INFO: shown 2\nERROR: bad x\n", buf.String())
}
