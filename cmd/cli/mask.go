package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	core "github.com/HabanaAI/HCL-sub006/core"
)

var maskCmd = &cobra.Command{
	Use:   "mask",
	Short: "Show the HCCL_PRIM_COLLECTIVE_MASK overlay mask in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mask := core.CurrentCollectiveMask()
		fmt.Printf("prim_collective_mask = %#x\n", mask)
		for _, kind := range []core.CollectiveKind{core.AllGather, core.AllReduce, core.ReduceScatter, core.Broadcast} {
			enabled := mask&(1<<uint(kind)) != 0
			fmt.Printf("  %-13s overlay_enabled=%v\n", kind, enabled)
		}
		return nil
	},
}
