package config

import (
	"fmt"

	"github.com/YoshitsuguKoike/docrev/internal/domain/model/document"
	"github.com/YoshitsuguKoike/docrev/internal/domain/service"
)

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (YAML, JSON, ENV, defaults)
// and keeps the app layer away from infrastructure details.
type Config interface {
	// Core settings
	Home() string     // Base directory (DOCREV_HOME)
	Reviewer() string // Default reviewer

	// Document contract
	Markers() document.Markers
	MinLines() int
	SubstantialChars() int
	Extensions() []string

	// Attribution
	Model() string       // Author model (CLAUDE_MODEL)
	Product() string     // Authoring environment name (MOAI_VERSION)
	Language() string    // Language support label (MOAI_LANGUAGE)
	Environment() string // Product and Language rendered through the environment format

	// Behavior
	JournalPath() string // Empty disables the patch journal
	StderrLevel() string // Stderr log level
	Stage() bool         // Re-stage patched files by default

	// Metadata
	ConfigSource() string // Source of configuration: "yaml", "json", or "default"
	SettingPath() string  // Path to the settings file if loaded from file
}

// AppConfig is the concrete implementation of Config interface
type AppConfig struct {
	home     string
	reviewer string

	markers          document.Markers
	minLines         int
	substantialChars int
	extensions       []string

	model             string
	product           string
	language          string
	environmentFormat string

	journalPath string
	stderrLevel string
	stage       bool

	configSource string
	settingPath  string
}

// Options carries the values NewAppConfig copies into an AppConfig
type Options struct {
	Home              string
	Reviewer          string
	Markers           document.Markers
	MinLines          int
	SubstantialChars  int
	Extensions        []string
	Model             string
	Product           string
	Language          string
	EnvironmentFormat string
	JournalPath       string
	StderrLevel       string
	Stage             bool
	ConfigSource      string
	SettingPath       string
}

// NewAppConfig creates a new AppConfig from resolved options.
// This is typically called by the infrastructure layer after loading and merging configurations.
func NewAppConfig(o Options) *AppConfig {
	return &AppConfig{
		home:              o.Home,
		reviewer:          o.Reviewer,
		markers:           o.Markers.WithDefaults(),
		minLines:          o.MinLines,
		substantialChars:  o.SubstantialChars,
		extensions:        append([]string(nil), o.Extensions...),
		model:             o.Model,
		product:           o.Product,
		language:          o.Language,
		environmentFormat: o.EnvironmentFormat,
		journalPath:       o.JournalPath,
		stderrLevel:       o.StderrLevel,
		stage:             o.Stage,
		configSource:      o.ConfigSource,
		settingPath:       o.SettingPath,
	}
}

// Home returns the base directory
func (c *AppConfig) Home() string {
	return c.home
}

// Reviewer returns the default reviewer
func (c *AppConfig) Reviewer() string {
	return c.reviewer
}

// Markers returns the block detection markers
func (c *AppConfig) Markers() document.Markers {
	return c.markers
}

// MinLines returns the minimum line count for a document to be patched
func (c *AppConfig) MinLines() int {
	return c.minLines
}

// SubstantialChars returns the length above which full attribution is written
func (c *AppConfig) SubstantialChars() int {
	return c.substantialChars
}

// Extensions returns the accepted document extensions
func (c *AppConfig) Extensions() []string {
	return append([]string(nil), c.extensions...)
}

// Model returns the author model identifier
func (c *AppConfig) Model() string {
	return c.model
}

// Product returns the authoring environment name
func (c *AppConfig) Product() string {
	return c.product
}

// Language returns the language support label
func (c *AppConfig) Language() string {
	return c.language
}

// Environment returns the rendered environment description
func (c *AppConfig) Environment() string {
	format := c.environmentFormat
	if format == "" {
		format = "%s (Claude Code + %s)"
	}
	return fmt.Sprintf(format, c.product, c.language)
}

// JournalPath returns the patch journal path
func (c *AppConfig) JournalPath() string {
	return c.journalPath
}

// StderrLevel returns the stderr log level
func (c *AppConfig) StderrLevel() string {
	return c.stderrLevel
}

// Stage returns whether patched files are re-staged by default
func (c *AppConfig) Stage() bool {
	return c.stage
}

// ConfigSource returns the source of configuration
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// SettingPath returns the path to the settings file if loaded from file
func (c *AppConfig) SettingPath() string {
	return c.settingPath
}

// PatcherConfig returns the patcher settings for cfg
func PatcherConfig(cfg Config) service.PatcherConfig {
	return service.PatcherConfig{
		Reviewer:         cfg.Reviewer(),
		Markers:          cfg.Markers(),
		MinLines:         cfg.MinLines(),
		SubstantialChars: cfg.SubstantialChars(),
		Model:            cfg.Model(),
		Environment:      cfg.Environment(),
	}
}
