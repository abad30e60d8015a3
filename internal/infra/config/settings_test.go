package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	appconfig "github.com/YoshitsuguKoike/docrev/internal/app/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvHome, EnvModel, EnvProduct, EnvLanguage} {
		t.Setenv(k, "")
	}
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name         string
		files        map[string]string
		envVars      map[string]string
		wantReviewer string
		wantModel    string
		wantEnv      string
		wantMinLines int
		wantSource   string
	}{
		{
			name:         "Default values only",
			wantReviewer: "drake",
			wantModel:    "claude-sonnet-4-5-20250929",
			wantEnv:      "MoAI-ADK v11.0.0 (Claude Code + Korean Language Support)",
			wantMinLines: 5,
			wantSource:   "default",
		},
		{
			name: "YAML file",
			files: map[string]string{
				"setting.yaml": "reviewer: alice\nmodel: local-model\nmin_lines: 3\n",
			},
			wantReviewer: "alice",
			wantModel:    "local-model",
			wantEnv:      "MoAI-ADK v11.0.0 (Claude Code + Korean Language Support)",
			wantMinLines: 3,
			wantSource:   "yaml",
		},
		{
			name: "JSON file",
			files: map[string]string{
				"setting.json": `{"reviewer": "bob", "environment": "Studio", "language": "KR"}`,
			},
			wantReviewer: "bob",
			wantModel:    "claude-sonnet-4-5-20250929",
			wantEnv:      "Studio (Claude Code + KR)",
			wantMinLines: 5,
			wantSource:   "json",
		},
		{
			name: "YAML wins over JSON",
			files: map[string]string{
				"setting.yaml": "reviewer: yaml-user\n",
				"setting.json": `{"reviewer": "json-user"}`,
			},
			wantReviewer: "yaml-user",
			wantModel:    "claude-sonnet-4-5-20250929",
			wantEnv:      "MoAI-ADK v11.0.0 (Claude Code + Korean Language Support)",
			wantMinLines: 5,
			wantSource:   "yaml",
		},
		{
			name: "Environment overrides file",
			files: map[string]string{
				"setting.yaml": "model: file-model\nenvironment: FileEnv\n",
			},
			envVars: map[string]string{
				EnvModel:    "env-model",
				EnvProduct:  "MoAI-ADK v12.0.0",
				EnvLanguage: "English",
			},
			wantReviewer: "drake",
			wantModel:    "env-model",
			wantEnv:      "MoAI-ADK v12.0.0 (Claude Code + English)",
			wantMinLines: 5,
			wantSource:   "yaml",
		},
		{
			name: "Custom environment format",
			files: map[string]string{
				"setting.yaml": "environment_format: \"%s / %s\"\n",
			},
			wantReviewer: "drake",
			wantModel:    "claude-sonnet-4-5-20250929",
			wantEnv:      "MoAI-ADK v11.0.0 / Korean Language Support",
			wantMinLines: 5,
			wantSource:   "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			fs := afero.NewMemMapFs()
			for name, content := range tt.files {
				require.NoError(t, afero.WriteFile(fs, filepath.Join(".docrev", name), []byte(content), 0o644))
			}

			cfg, err := LoadSettings(fs, ".docrev")
			require.NoError(t, err)

			assert.Equal(t, tt.wantReviewer, cfg.Reviewer())
			assert.Equal(t, tt.wantModel, cfg.Model())
			assert.Equal(t, tt.wantEnv, cfg.Environment())
			assert.Equal(t, tt.wantMinLines, cfg.MinLines())
			assert.Equal(t, tt.wantSource, cfg.ConfigSource())
			if tt.wantSource == "default" {
				assert.Empty(t, cfg.SettingPath())
			} else {
				assert.Equal(t, filepath.Join(".docrev", "setting."+tt.wantSource), cfg.SettingPath())
			}
		})
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadSettings(afero.NewMemMapFs(), ".docrev")
	require.NoError(t, err)

	assert.Equal(t, ".docrev", cfg.Home())
	assert.Equal(t, 200, cfg.SubstantialChars())
	assert.Equal(t, []string{".md"}, cfg.Extensions())
	assert.Empty(t, cfg.JournalPath())
	assert.Equal(t, "warn", cfg.StderrLevel())
	assert.False(t, cfg.Stage())
	assert.Equal(t, "## 📝 문서 정보", cfg.Markers().InfoHeading)
	assert.Equal(t, "## 3. 수정 이력", cfg.Markers().RevisionHeading)
}

func TestLoadSettings_DocumentContract(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	content := `
revision_heading: "## Revision History"
revision_intro: "Major changes."
extensions: [".md", ".markdown"]
journal_path: var/journal.ndjson
stderr_level: DEBUG
stage: true
`
	require.NoError(t, afero.WriteFile(fs, "home/setting.yaml", []byte(content), 0o644))

	cfg, err := LoadSettings(fs, "home")
	require.NoError(t, err)

	assert.Equal(t, "## Revision History", cfg.Markers().RevisionHeading)
	assert.Equal(t, "Major changes.", cfg.Markers().RevisionIntro)
	assert.Equal(t, "## 📝 문서 정보", cfg.Markers().InfoHeading)
	assert.Equal(t, "| 일자 | 버전 | 설명 | 리뷰어 |", cfg.Markers().TableHeader)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions())
	assert.Equal(t, filepath.Join("home", "var", "journal.ndjson"), cfg.JournalPath())
	assert.Equal(t, "debug", cfg.StderrLevel())
	assert.True(t, cfg.Stage())

	pc := appconfig.PatcherConfig(cfg)
	assert.Equal(t, "## Revision History", pc.Markers.RevisionHeading)
	assert.Equal(t, "drake", pc.Reviewer)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "reviewer: [unclosed\n"},
		{"zero min lines", "min_lines: 0\n"},
		{"negative chars", "substantial_chars: -1\n"},
		{"zero chars", "substantial_chars: 0\n"},
		{"blank reviewer", "reviewer: \"  \"\n"},
		{"extension without dot", "extensions: [md]\n"},
		{"unknown level", "stderr_level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "h/setting.yaml", []byte(tt.content), 0o644))

			_, err := LoadSettings(fs, "h")
			assert.Error(t, err)
		})
	}
}

func TestResolveHome(t *testing.T) {
	t.Setenv(EnvHome, "")
	assert.Equal(t, ".docrev", ResolveHome())

	t.Setenv(EnvHome, "/tmp/custom")
	assert.Equal(t, "/tmp/custom", ResolveHome())
}

func TestMarshalEffective(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModel, "env-model")
	cfg, err := LoadSettings(afero.NewMemMapFs(), ".docrev")
	require.NoError(t, err)

	out, err := MarshalEffective(cfg)
	require.NoError(t, err)

	var back map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "default", back["source"])
	assert.Equal(t, "env-model", back["model"])
	assert.Equal(t, "drake", back["reviewer"])
	assert.Equal(t, "MoAI-ADK v11.0.0 (Claude Code + Korean Language Support)", back["rendered_environment"])
	assert.NotContains(t, back, "setting_path")
}
