package cli

import (
	"github.com/spf13/cobra"

	core "github.com/HabanaAI/HCL-sub006/core"
	"github.com/HabanaAI/HCL-sub006/pkg/config"
)

// RootCmd is the top-level command every subcommand attaches to.
var RootCmd = &cobra.Command{
	Use:   "hcclctl",
	Short: "Inspect and drive the collective-operations graph engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}
		core.SetLogLevel(cfg.LogLevel)
		core.InitCollectiveMask(cfg.PrimCollectiveMask)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(maskCmd)
}
