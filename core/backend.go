package core

// Backend is the contract the Graph invokes during submission (§4.6). It is
// opaque on purpose: hardware command encoding, stream/scheduler firmware
// interaction, NIC queue-pair management, device memory allocation, and
// event-queue polling are all external collaborators per §1 and never
// appear on this interface or anywhere else in this package.
//
// The backend owns all resolution of BufferToken → concrete address; the
// engine never dereferences a token itself.
type Backend interface {
	// InitGraph is called once before the first execution set and returns
	// an opaque start value threaded through to FinalizeGraph.
	InitGraph(g *Graph) (uint64, error)

	// FinalizeGraph is called once after the last execution set.
	FinalizeGraph(g *Graph, startVal uint64) error

	// InitExec/FinalizeExec bracket each execution set in index order.
	InitExec(g *Graph, setIdx int) error
	FinalizeExec(g *Graph, setIdx int) error

	// One processor per primitive variant. Each receives the graph (for
	// graph.State, graph.StrongOrderStart, and buffer-token resolution)
	// and the primitive itself.
	ProcessAllGather(g *Graph, p *AllGatherPrim) error
	ProcessBroadcast(g *Graph, p *BroadcastPrim) error
	ProcessReduceScatter(g *Graph, p *ReduceScatterPrim) error
	ProcessSend(g *Graph, p *SendPrim) error
	ProcessRecv(g *Graph, p *RecvPrim) error
	ProcessReduction(g *Graph, p *ReductionPrim) error
}
