package cli

import (
	"github.com/spf13/cobra"

	infraConfig "github.com/YoshitsuguKoike/docrev/internal/infra/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Config prints the configuration after environment overrides,
setting.yaml (or setting.json) and defaults have been applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := infraConfig.MarshalEffective(globalConfig)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
