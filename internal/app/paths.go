package app

import (
	"path/filepath"
)

// Paths holds the resolved locations under the docrev home directory
type Paths struct {
	Home        string // .docrev directory
	SettingYAML string // .docrev/setting.yaml
	SettingJSON string // .docrev/setting.json
}

// ResolvePaths returns all paths based on home
func ResolvePaths(home string) Paths {
	if home == "" {
		home = ".docrev"
	}
	return Paths{
		Home:        home,
		SettingYAML: filepath.Join(home, "setting.yaml"),
		SettingJSON: filepath.Join(home, "setting.json"),
	}
}

// SettingFiles returns the settings files in lookup order
func (p Paths) SettingFiles() []string {
	return []string{p.SettingYAML, p.SettingJSON}
}

// Resolve anchors a relative path at Home
func (p Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Home, path)
}
