package core

import "sync"

// Process-wide, initialize-once state, grounded on the teacher's
// InitLedger/CurrentLedger sync.Once pattern in helpers.go. §5 calls out
// the dispatcher's primitive overlay as exactly this kind of shared
// resource: "process-wide state with an initialize-once lifecycle;
// concurrent first-time initialization is the caller's responsibility."

var (
	maskOnce   sync.Once
	globalMask uint64
)

// InitCollectiveMask installs the process-wide HCCL_PRIM_COLLECTIVE_MASK
// value consulted by Run. Subsequent calls are no-ops, matching the
// teacher's "first call wins" singleton lifecycle.
func InitCollectiveMask(mask uint64) {
	maskOnce.Do(func() { globalMask = mask })
}

// CurrentCollectiveMask returns the process-wide mask installed by
// InitCollectiveMask, or 0 if it was never called.
func CurrentCollectiveMask() uint64 { return globalMask }

// RunWithDefaultMask is a convenience wrapper around Run that consults the
// process-wide mask installed by InitCollectiveMask instead of requiring
// every caller to thread one through explicitly.
func RunWithDefaultMask(backend Backend, params *CollectiveParams) error {
	return Run(backend, params, CurrentCollectiveMask())
}
