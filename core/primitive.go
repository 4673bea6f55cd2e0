package core

// PrimitiveType tags the six primitive variants into four dispatchable
// categories, matching hcl/src/collective_interface/prims/hccl_prim.h's
// PrimType enum (REDUCTION_PRIM_TYPE added per spec §3).
type PrimitiveType int

const (
	ScaleupPrimType PrimitiveType = iota
	ScaleoutSendPrimType
	ScaleoutRecvPrimType
	ReductionPrimType

	numPrimitiveTypes = 4
)

func (t PrimitiveType) String() string {
	switch t {
	case ScaleupPrimType:
		return "SCALEUP"
	case ScaleoutSendPrimType:
		return "SCALEOUT_SEND"
	case ScaleoutRecvPrimType:
		return "SCALEOUT_RECV"
	case ReductionPrimType:
		return "REDUCTION"
	default:
		return "UNKNOWN"
	}
}

func typeBit(t PrimitiveType) uint8 { return 1 << uint(t) }

// WaitMethod names the concrete mechanism a backend uses to satisfy a
// SyncEdge. The engine only allocates sequential slots (GPSO_0, GPSO_1, …);
// it never interprets them.
type WaitMethod int

const unsetWaitMethod WaitMethod = -1

// SyncEdge is a directed dependency between a signaler primitive and a
// waiter primitive, per §3. "Cross-exec" iff the endpoints land in
// different execution sets.
type SyncEdge struct {
	Signaler Primitive
	Waiter   Primitive
	Method   WaitMethod
}

// CrossExec reports whether this edge spans two different execution sets.
// Both endpoints must already be partitioned.
func (e *SyncEdge) CrossExec() bool {
	return e.Signaler.ExecSet() != e.Waiter.ExecSet()
}

// Primitive is the common interface implemented by every graph node
// (AllGather, Broadcast, ReduceScatter, Send, Recv, Reduction). Grounded on
// hccl_prim.h's virtual base; Go favors an interface over inheritance per
// the "tagged sum type, no hierarchy" design note in spec §9.
type Primitive interface {
	// Type returns the primitive's dispatch-category tag.
	Type() PrimitiveType

	// Index is this primitive's monotonic position in its owning graph.
	// -1 before Init is called.
	Index() int

	// ExecSet is the index of the execution set this primitive was
	// partitioned into. -1 before partitioning.
	ExecSet() int
	setExecSet(idx int)

	// Init stamps the backpointer and index; called exactly once by
	// CreatePrimitive. Implementations that carry a buffer token
	// additionally verify it here, tripping staleness immediately rather
	// than at submission time.
	Init(g *Graph, idx int)

	// Process invokes the matching backend method for this primitive's
	// kind and returns its result unchanged.
	Process(b Backend) error

	// IsHead reports whether this primitive has no incoming (waiting)
	// sync edges.
	IsHead() bool

	// IsStrongOrderRequired reports whether any sync edge this primitive
	// waits on is cross-exec, per §4.2.
	IsStrongOrderRequired() bool

	// WaitResource returns this primitive's assigned wait method. If it
	// does not have one yet, it takes the graph's current wait counter as
	// its wait method, advancing the counter only when inc is true.
	WaitResource(inc bool) WaitMethod

	signalingEdges() []*SyncEdge
	waitingEdges() []*SyncEdge
	addSignalingEdge(e *SyncEdge)
	addWaitingEdge(e *SyncEdge)
}

// primBase implements the adjacency/index bookkeeping shared by every
// primitive variant. Concrete primitives embed it and implement Type,
// Process, and Init; those that carry a buffer token add a staleness
// check in Init.
type primBase struct {
	graph     *Graph
	index     int
	execSet   int
	signaling []*SyncEdge
	waiting   []*SyncEdge
	waitM     WaitMethod
}

func newPrimBase() primBase {
	return primBase{index: -1, execSet: -1, waitM: unsetWaitMethod}
}

func (p *primBase) Index() int        { return p.index }
func (p *primBase) ExecSet() int      { return p.execSet }
func (p *primBase) setExecSet(i int)  { p.execSet = i }

func (p *primBase) initBase(g *Graph, idx int) {
	p.graph = g
	p.index = idx
}

func (p *primBase) IsHead() bool { return len(p.waiting) == 0 }

func (p *primBase) IsStrongOrderRequired() bool {
	for _, e := range p.waiting {
		if e.CrossExec() {
			return true
		}
	}
	return false
}

func (p *primBase) WaitResource(inc bool) WaitMethod {
	if len(p.waiting) > 0 && p.waiting[0].Method != unsetWaitMethod {
		return p.waiting[0].Method
	}
	if p.waitM != unsetWaitMethod {
		return p.waitM
	}
	p.waitM = WaitMethod(p.graph.getWaits(inc))
	return p.waitM
}

func (p *primBase) signalingEdges() []*SyncEdge  { return p.signaling }
func (p *primBase) waitingEdges() []*SyncEdge    { return p.waiting }
func (p *primBase) addSignalingEdge(e *SyncEdge) { p.signaling = append(p.signaling, e) }
func (p *primBase) addWaitingEdge(e *SyncEdge)   { p.waiting = append(p.waiting, e) }
