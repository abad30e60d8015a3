package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/docrev/internal/app"
	"github.com/YoshitsuguKoike/docrev/internal/app/config"
	"github.com/YoshitsuguKoike/docrev/internal/domain/model/document"
)

// Environment variables that override attribution settings
const (
	EnvHome     = "DOCREV_HOME"
	EnvModel    = "CLAUDE_MODEL"
	EnvProduct  = "MOAI_VERSION"
	EnvLanguage = "MOAI_LANGUAGE"
)

// RawSettings represents the structure of the settings file.
// JSON documents parse too since YAML is a superset.
type RawSettings struct {
	// Core settings
	Reviewer *string `yaml:"reviewer" json:"reviewer"`

	// Document contract
	InfoHeading      *string  `yaml:"info_heading" json:"info_heading"`
	RevisionHeading  *string  `yaml:"revision_heading" json:"revision_heading"`
	RevisionIntro    *string  `yaml:"revision_intro" json:"revision_intro"`
	MinLines         *int     `yaml:"min_lines" json:"min_lines"`
	SubstantialChars *int     `yaml:"substantial_chars" json:"substantial_chars"`
	Extensions       []string `yaml:"extensions" json:"extensions"`

	// Attribution
	Model             *string `yaml:"model" json:"model"`
	Environment       *string `yaml:"environment" json:"environment"`
	Language          *string `yaml:"language" json:"language"`
	EnvironmentFormat *string `yaml:"environment_format" json:"environment_format"`

	// Behavior
	JournalPath *string `yaml:"journal_path" json:"journal_path"`
	StderrLevel *string `yaml:"stderr_level" json:"stderr_level"`
	Stage       *bool   `yaml:"stage" json:"stage"`
}

// ResolveHome returns the base directory: DOCREV_HOME or ".docrev"
func ResolveHome() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	return ".docrev"
}

// LoadSettings loads configuration from baseDir.
// Priority: environment > setting.yaml (or setting.json) > defaults
func LoadSettings(fs afero.Fs, baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	paths := app.ResolvePaths(baseDir)
	for _, path := range paths.SettingFiles() {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		configSource = strings.TrimPrefix(filepath.Ext(path), ".")
		settingPath = path
		break
	}

	applyEnvOverrides(settings)
	applyDefaults(settings)

	if err := validate(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", settingPathOr(settingPath), err)
	}

	return buildAppConfig(paths, settings, configSource, settingPath), nil
}

// applyEnvOverrides lets the authoring environment override attribution
func applyEnvOverrides(settings *RawSettings) {
	override := func(dst **string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = &v
		}
	}
	override(&settings.Model, EnvModel)
	override(&settings.Environment, EnvProduct)
	override(&settings.Language, EnvLanguage)
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	str := func(dst **string, def string) {
		if *dst == nil {
			v := def
			*dst = &v
		}
	}
	num := func(dst **int, def int) {
		if *dst == nil {
			v := def
			*dst = &v
		}
	}

	markers := document.DefaultMarkers()
	str(&settings.Reviewer, "drake")
	str(&settings.InfoHeading, markers.InfoHeading)
	str(&settings.RevisionHeading, markers.RevisionHeading)
	str(&settings.RevisionIntro, markers.RevisionIntro)
	num(&settings.MinLines, 5)
	num(&settings.SubstantialChars, 200)
	if len(settings.Extensions) == 0 {
		settings.Extensions = []string{".md"}
	}

	str(&settings.Model, "claude-sonnet-4-5-20250929")
	str(&settings.Environment, "MoAI-ADK v11.0.0")
	str(&settings.Language, "Korean Language Support")
	str(&settings.EnvironmentFormat, "%s (Claude Code + %s)")

	str(&settings.JournalPath, "")
	str(&settings.StderrLevel, "warn")
	if settings.Stage == nil {
		v := false
		settings.Stage = &v
	}
}

func validate(settings *RawSettings) error {
	if *settings.MinLines < 1 {
		return fmt.Errorf("min_lines must be at least 1, got %d", *settings.MinLines)
	}
	if *settings.SubstantialChars < 1 {
		return fmt.Errorf("substantial_chars must be at least 1, got %d", *settings.SubstantialChars)
	}
	if strings.TrimSpace(*settings.Reviewer) == "" {
		return fmt.Errorf("reviewer must not be empty")
	}
	for _, ext := range settings.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	switch strings.ToLower(*settings.StderrLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown stderr_level %q", *settings.StderrLevel)
	}
	return nil
}

func settingPathOr(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// buildAppConfig converts RawSettings to AppConfig
func buildAppConfig(paths app.Paths, settings *RawSettings, configSource, settingPath string) *config.AppConfig {
	markers := document.DefaultMarkers()
	markers.InfoHeading = *settings.InfoHeading
	markers.RevisionHeading = *settings.RevisionHeading
	markers.RevisionIntro = *settings.RevisionIntro

	return config.NewAppConfig(config.Options{
		Home:              paths.Home,
		Reviewer:          strings.TrimSpace(*settings.Reviewer),
		Markers:           markers,
		MinLines:          *settings.MinLines,
		SubstantialChars:  *settings.SubstantialChars,
		Extensions:        settings.Extensions,
		Model:             *settings.Model,
		Product:           *settings.Environment,
		Language:          *settings.Language,
		EnvironmentFormat: *settings.EnvironmentFormat,
		JournalPath:       paths.Resolve(*settings.JournalPath),
		StderrLevel:       strings.ToLower(*settings.StderrLevel),
		Stage:             *settings.Stage,
		ConfigSource:      configSource,
		SettingPath:       settingPath,
	})
}

// EffectiveSettings is the YAML view printed by `docrev config`
type EffectiveSettings struct {
	Source           string   `yaml:"source"`
	SettingPath      string   `yaml:"setting_path,omitempty"`
	Home             string   `yaml:"home"`
	Reviewer         string   `yaml:"reviewer"`
	InfoHeading      string   `yaml:"info_heading"`
	RevisionHeading  string   `yaml:"revision_heading"`
	RevisionIntro    string   `yaml:"revision_intro"`
	MinLines         int      `yaml:"min_lines"`
	SubstantialChars int      `yaml:"substantial_chars"`
	Extensions       []string `yaml:"extensions"`
	Model            string   `yaml:"model"`
	Environment      string   `yaml:"environment"`
	Language         string   `yaml:"language"`
	RenderedEnv      string   `yaml:"rendered_environment"`
	JournalPath      string   `yaml:"journal_path"`
	StderrLevel      string   `yaml:"stderr_level"`
	Stage            bool     `yaml:"stage"`
}

// Effective returns the resolved configuration in settings-file shape
func Effective(cfg config.Config) EffectiveSettings {
	m := cfg.Markers()
	return EffectiveSettings{
		Source:           cfg.ConfigSource(),
		SettingPath:      cfg.SettingPath(),
		Home:             cfg.Home(),
		Reviewer:         cfg.Reviewer(),
		InfoHeading:      m.InfoHeading,
		RevisionHeading:  m.RevisionHeading,
		RevisionIntro:    m.RevisionIntro,
		MinLines:         cfg.MinLines(),
		SubstantialChars: cfg.SubstantialChars(),
		Extensions:       cfg.Extensions(),
		Model:            cfg.Model(),
		Environment:      cfg.Product(),
		Language:         cfg.Language(),
		RenderedEnv:      cfg.Environment(),
		JournalPath:      cfg.JournalPath(),
		StderrLevel:      cfg.StderrLevel(),
		Stage:            cfg.Stage(),
	}
}

// MarshalEffective renders cfg as YAML
func MarshalEffective(cfg config.Config) ([]byte, error) {
	return yaml.Marshal(Effective(cfg))
}
