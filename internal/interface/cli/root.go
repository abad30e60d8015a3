package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/docrev/internal/app/config"
	infraConfig "github.com/YoshitsuguKoike/docrev/internal/infra/config"
	"github.com/YoshitsuguKoike/docrev/internal/interface/cli/version"
)

// globalConfig holds the loaded configuration for all commands
var globalConfig config.Config

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	logLevel string
	dir      string
}

var rootOpts rootOptions

func NewRoot() *cobra.Command {
	rootOpts = rootOptions{}

	cmd := &cobra.Command{
		Use:   "docrev",
		Short: "Keep revision history and document info in markdown files",
		Long: `docrev records modification events in markdown documents.

Each patch adds a row to the "## 3. 수정 이력" table and keeps the
"## 📝 문서 정보" block's version and last modified date in step.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Priority: ENV > setting.yaml / setting.json > defaults
			baseDir := infraConfig.ResolveHome()
			cfg, err := infraConfig.LoadSettings(afero.NewOsFs(), baseDir)
			if err != nil {
				// Continue with defaults if loading fails
				InitGlobalLogger(rootOpts.logLevel)
				Warn("%v, using defaults", err)
				cfg, _ = infraConfig.LoadSettings(afero.NewMemMapFs(), baseDir)
			}
			globalConfig = cfg

			level := cfg.StderrLevel()
			if rootOpts.logLevel != "" {
				level = rootOpts.logLevel
			}
			InitGlobalLogger(level)
			InitializeLoggers(GetLogger())
			Debug("configuration loaded from %s", cfg.ConfigSource())
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	cmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "Stderr log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&rootOpts.dir, "dir", "C", ".", "Run as if started in this directory")

	cmd.AddCommand(newTrackCmd())
	cmd.AddCommand(newHookCmd())
	cmd.AddCommand(newPreCommitCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(version.NewCommand())
	return cmd
}
