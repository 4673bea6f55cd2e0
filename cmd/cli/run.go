package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/HabanaAI/HCL-sub006/core"
)

var runFlags struct {
	collective string
	rank       int
	commSize   int
	groupSize  int
	count      int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Lower a collective into a primitive graph and drive it through a logging backend",
	Args:  cobra.NoArgs,
	RunE:  runCollective,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.collective, "collective", "all-gather", "all-gather | all-reduce")
	runCmd.Flags().IntVar(&runFlags.rank, "rank", 0, "this process's rank")
	runCmd.Flags().IntVar(&runFlags.commSize, "comm-size", 4, "total rank count")
	runCmd.Flags().IntVar(&runFlags.groupSize, "group-size", 2, "ranks per scaleup group (box)")
	runCmd.Flags().IntVar(&runFlags.count, "count", 8, "element count (must be divisible by comm-size for all-reduce)")
}

func runCollective(cmd *cobra.Command, args []string) error {
	comm := core.NewCommunicator(runFlags.rank, runFlags.commSize, runFlags.groupSize)
	params := &core.CollectiveParams{
		Count:   runFlags.count,
		DType:   core.Float32,
		Comm:    comm,
		SrcAddr: 0x1000,
		DstAddr: 0x2000,
	}

	switch strings.ToLower(runFlags.collective) {
	case "all-gather":
		params.Op = core.AllGather
	case "all-reduce":
		params.Op = core.AllReduce
	default:
		return fmt.Errorf("unknown collective %q: want all-gather or all-reduce", runFlags.collective)
	}

	backend := core.NewLogBackend()
	if err := core.RunWithDefaultMask(backend, params); err != nil {
		return err
	}
	fmt.Printf("%s lowered and submitted for rank %d of %d (box size %d)\n",
		params.Op, runFlags.rank, runFlags.commSize, runFlags.groupSize)
	return nil
}
