// Collective-Operations Graph Engine ▸ Dispatcher
// -------------------------------------------------
//
// Two registries, per spec §4.5: a built-in graphMethods table and an
// overlay primitiveMethods enabled by a mask. Grounded on the teacher's
// opcode_dispatcher.go (mutex-protected map, panic on first-registration
// collision) generalized to the overlay's "merge, don't overwrite"
// semantics from hcl/src/collective_interface/hccl_prim_collectives.cpp.
package core

import "sync"

// LoweringFunc is a pure function that, given a backend and request
// descriptor, constructs a Graph (or a sequence of them) and submits it.
type LoweringFunc func(backend Backend, params *CollectiveParams) error

var (
	registryMu    sync.RWMutex
	graphMethods  = make(map[CollectiveKind]LoweringFunc)
	primMethods   map[CollectiveKind]LoweringFunc
	primOverlayOn sync.Once
)

// RegisterGraphMethod binds a built-in lowering to a collective kind. It
// panics on a duplicate binding — a config-time programmer error, never a
// runtime condition, mirroring Register's log.Panicf in the teacher's
// opcode dispatcher.
func RegisterGraphMethod(op CollectiveKind, fn LoweringFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := graphMethods[op]; exists {
		panic(&ConstructionError{Invariant: "dispatcher-collision", PrimIndex: -1,
			Detail: "graph method for " + op.String() + " already registered"})
	}
	graphMethods[op] = fn
}

// initPrimitiveImpl lazily installs the default primitive overlay exactly
// once per process. Grounded on hccl_prim_collectives.cpp's
// initPrimitiveImpl/extendedMethods lazy-init pattern.
func initPrimitiveImpl() {
	primOverlayOn.Do(func() {
		primMethods = make(map[CollectiveKind]LoweringFunc)
	})
}

// RegisterPrimitiveImpl adds a lowering to the overlay. A second
// registration for an already-bound op is ignored with a logged warning — this matches
// std::map::insert's "first wins" semantics in the original overlay
// registry (§4.5: "new entries do not overwrite existing ones"), not the
// built-in registry's fail-fast collision policy.
func RegisterPrimitiveImpl(op CollectiveKind, fn LoweringFunc) {
	initPrimitiveImpl()
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := primMethods[op]; !exists {
		primMethods[op] = fn
	} else {
		log.Warnf("primitive overlay: %s already registered, ignoring later registration", op)
	}
}

// checkPrimitiveImpl reports whether op is enabled by mask and present in
// the overlay registry.
func checkPrimitiveImpl(mask uint64, op CollectiveKind) (LoweringFunc, bool) {
	if mask&(1<<uint(op)) == 0 {
		return nil, false
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := primMethods[op]
	return fn, ok
}

// Run is the single external entry point (§6): it consults the primitive
// overlay when op's bit is set in mask, falling back to the built-in
// graphMethods registry otherwise. A collective with no lowering in either
// registry surfaces a *DispatchError.
func Run(backend Backend, params *CollectiveParams, mask uint64) error {
	if fn, ok := checkPrimitiveImpl(mask, params.Op); ok {
		return fn(backend, params)
	}

	registryMu.RLock()
	fn, ok := graphMethods[params.Op]
	registryMu.RUnlock()
	if !ok {
		return &DispatchError{Op: params.Op, Why: "no graph method or enabled primitive overlay registered"}
	}
	return fn(backend, params)
}

func init() {
	RegisterGraphMethod(AllGather, AllGatherRing)
	RegisterGraphMethod(AllReduce, AllReducePairwise)
}
