package core

// ExecutionSet maps a primitive-type tag to the head primitive of that type
// within this set (§3, invariant 7). Sets are indexed 0..N-1 and executed
// in that order.
type ExecutionSet struct {
	heads map[PrimitiveType]Primitive
}

func newExecutionSet() *ExecutionSet {
	return &ExecutionSet{heads: make(map[PrimitiveType]Primitive)}
}

// insert records (type, p) as this set's head for that type unless a head
// is already recorded — matches std::map::insert's "first wins" semantics
// in hccl_graph.cpp's setupExecSets, preserved deliberately per the open
// question in spec §9 about same-round type collisions.
func (s *ExecutionSet) insert(p Primitive) {
	if _, exists := s.heads[p.Type()]; !exists {
		s.heads[p.Type()] = p
	}
}

// orderedHeads returns this set's (type, head) pairs in type-tag order, the
// iteration order Graph.Submit uses to drive backend.Process<Kind>.
func (s *ExecutionSet) orderedHeads() []Primitive {
	out := make([]Primitive, 0, len(s.heads))
	for t := PrimitiveType(0); t < numPrimitiveTypes; t++ {
		if p, ok := s.heads[t]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Graph owns a collection of primitives and sync edges for one collective
// submission. Grounded on hcl/src/collective_interface/hccl_graph.h.
type Graph struct {
	backend Backend
	params  *CollectiveParams

	prims []Primitive
	edges []*SyncEdge
	tokens BufferTokenGenerator

	// State is a free slot the backend may stash graph-scoped data in
	// during submission; the engine never reads or writes it.
	State any

	strongOrderStart bool
	requestedWaits   int

	execSets []*ExecutionSet
}

// NewGraph creates an empty graph bound to a backend and request
// descriptor. One Graph is created per collective invocation and discarded
// after Submit.
func NewGraph(backend Backend, params *CollectiveParams) *Graph {
	return &Graph{backend: backend, params: params}
}

// Params returns this graph's request descriptor.
func (g *Graph) Params() *CollectiveParams { return g.params }

// SetStrongOrderStart marks the graph as beginning a fresh logical ordering
// region, used by multi-phase lowerings to chain sub-graphs (§4.3).
func (g *Graph) SetStrongOrderStart(v bool) { g.strongOrderStart = v }

// StrongOrderStart reports whether this graph opens a new ordering region.
func (g *Graph) StrongOrderStart() bool { return g.strongOrderStart }

// getWaits returns the current wait-resource counter, post-incrementing if
// inc is true. Backs Primitive.WaitResource's sequential allocation.
func (g *Graph) getWaits(inc bool) int {
	v := g.requestedWaits
	if inc {
		g.requestedWaits++
	}
	return v
}

// GenerateBufferToken passes through to the graph's token generator.
func (g *Graph) GenerateBufferToken(class BufferClass) BufferToken {
	return g.tokens.Generate(class)
}

// Verify passes through to the graph's token generator's staleness check.
func (g *Graph) Verify(tok BufferToken) { g.tokens.Verify(tok) }

// HasAllocation passes through to the graph's token generator.
func (g *Graph) HasAllocation(class BufferClass) bool { return g.tokens.HasAllocated(class) }

// CreatePrimitive appends p to the graph, stamps it with the next monotonic
// index, and calls its Init hook. Go has no variadic-template equivalent of
// hccl_graph.h's create_primitive<T, Args...>; the caller constructs the
// primitive value with one of the new* constructors in prims.go and passes
// it here to register it, which plays the same role.
func CreatePrimitive[T Primitive](g *Graph, p T) T {
	idx := len(g.prims)
	g.prims = append(g.prims, p)
	p.Init(g, idx)
	return p
}

// AddWait validates invariant 1, creates a SyncEdge between signaler and
// waiter, and wires it into both primitives' adjacency lists.
func AddWait(g *Graph, signaler, waiter Primitive) *SyncEdge {
	verify(signaler.Index() < waiter.Index(), "edge-ordering", waiter.Index(),
		"sync edge must run forward in creation order: signaler=%d waiter=%d", signaler.Index(), waiter.Index())
	e := &SyncEdge{Signaler: signaler, Waiter: waiter, Method: unsetWaitMethod}
	g.edges = append(g.edges, e)
	signaler.addSignalingEdge(e)
	waiter.addWaitingEdge(e)
	return e
}

// Prims returns the graph's primitives in creation order.
func (g *Graph) Prims() []Primitive { return g.prims }

// Edges returns the graph's sync edges in creation order.
func (g *Graph) Edges() []*SyncEdge { return g.edges }

// ExecSets returns the graph's execution sets after partitioning.
func (g *Graph) ExecSets() []*ExecutionSet { return g.execSets }

// setupExecSets partitions g.prims into execution sets per the BFS
// algorithm of §4.3, translated line-for-line from
// hcl/src/collective_interface/hccl_graph.cpp's setupExecSets(). See
// DESIGN.md for the open question this algorithm carries forward as-is.
func (g *Graph) setupExecSets() {
	g.execSets = append(g.execSets, newExecutionSet())
	var prevTypeMask, typeMask uint8

	for _, prim := range g.prims {
		if prim.ExecSet() >= 0 {
			continue
		}

		queue := []Primitive{prim}
		var subGraph []Primitive

		for len(queue) > 0 {
			temp := queue[0]
			queue = queue[1:]

			typeMask |= typeBit(temp.Type())
			for _, e := range temp.signalingEdges() {
				queue = append(queue, e.Waiter)
			}

			if prevTypeMask&typeBit(temp.Type()) == 0 {
				subGraph = append(subGraph, temp)
			} else {
				typeMask &^= prevTypeMask
				if temp.IsHead() {
					subGraph = append(subGraph, temp)
				}
				g.execSets = append(g.execSets, newExecutionSet())
				break
			}
		}

		prevTypeMask = typeMask

		set := g.execSets[len(g.execSets)-1]
		for _, p := range subGraph {
			set.insert(p)
			p.setExecSet(len(g.execSets) - 1)
		}
	}
}

// Submit partitions the graph into execution sets and drives the backend
// through init/finalize brackets per the pseudocode in §4.3. It returns the
// first non-nil error from any backend callback unchanged; the backend is
// expected to have no partial effect once it reports one.
func (g *Graph) Submit() error {
	g.setupExecSets()
	log.Debugf("graph submit: %d primitives, %d edges, %d exec sets", len(g.prims), len(g.edges), len(g.execSets))

	startVal, err := g.backend.InitGraph(g)
	if err != nil {
		return err
	}

	for j, set := range g.execSets {
		if err := g.backend.InitExec(g, j); err != nil {
			return err
		}
		g.requestedWaits = 0
		for _, head := range set.orderedHeads() {
			if err := head.Process(g.backend); err != nil {
				return err
			}
		}
		if err := g.backend.FinalizeExec(g, j); err != nil {
			return err
		}
	}

	return g.backend.FinalizeGraph(g, startVal)
}
