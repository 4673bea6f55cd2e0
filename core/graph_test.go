package core

import "testing"

func testParams() *CollectiveParams {
	return &CollectiveParams{
		Op:    AllGather,
		Count: 4,
		DType: Float32,
		Comm:  NewCommunicator(0, 4, 2),
	}
}

func TestCreatePrimitiveStampsMonotonicIndices(t *testing.T) {
	g := NewGraph(nil, testParams())
	p0 := CreatePrimitive(g, newAllGather(0, 0, 1))
	p1 := CreatePrimitive(g, newAllGather(0, 0, 1))
	if p0.Index() != 0 || p1.Index() != 1 {
		t.Fatalf("indices = %d, %d, want 0, 1", p0.Index(), p1.Index())
	}
	if len(g.Prims()) != 2 {
		t.Fatalf("len(Prims()) = %d, want 2", len(g.Prims()))
	}
}

func TestAddWaitRejectsBackwardEdge(t *testing.T) {
	g := NewGraph(nil, testParams())
	p0 := CreatePrimitive(g, newAllGather(0, 0, 1))
	p1 := CreatePrimitive(g, newAllGather(0, 0, 1))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for a backward sync edge")
		}
		if _, ok := r.(*ConstructionError); !ok {
			t.Fatalf("panic value is %T, want *ConstructionError", r)
		}
	}()
	AddWait(g, p1, p0) // p1 was created after p0: signaler must precede waiter
}

func TestAddWaitWiresAdjacencyAndHeadStatus(t *testing.T) {
	g := NewGraph(nil, testParams())
	p0 := CreatePrimitive(g, newAllGather(0, 0, 1))
	p1 := CreatePrimitive(g, newAllGather(0, 0, 1))

	if !p0.IsHead() || !p1.IsHead() {
		t.Fatal("both primitives should be heads before any edge is added")
	}
	AddWait(g, p0, p1)
	if !p0.IsHead() {
		t.Fatal("p0 should remain a head: it has no incoming edge")
	}
	if p1.IsHead() {
		t.Fatal("p1 should no longer be a head: it now has an incoming edge")
	}
	if len(g.Edges()) != 1 {
		t.Fatalf("len(Edges()) = %d, want 1", len(g.Edges()))
	}
}

func TestSetupExecSetsConnectedChainIsOneSet(t *testing.T) {
	g := NewGraph(nil, testParams())
	head := CreatePrimitive(g, newAllGather(0, 0, 1))
	send := CreatePrimitive(g, newSend(1, AddrOperand(8), 1, false))
	AddWait(g, head, send)
	recv := CreatePrimitive(g, newRecv(1, AddrOperand(16), 1, false, false))
	AddWait(g, send, recv)
	tail := CreatePrimitive(g, newAllGather(16, 16, 1))
	AddWait(g, recv, tail)

	g.setupExecSets()

	if len(g.ExecSets()) != 1 {
		t.Fatalf("len(ExecSets()) = %d, want 1: a connected chain from a fresh graph never splits on its first pass", len(g.ExecSets()))
	}
	for _, p := range []Primitive{head, send, recv, tail} {
		if p.ExecSet() != 0 {
			t.Fatalf("primitive %d landed in exec set %d, want 0", p.Index(), p.ExecSet())
		}
	}
}

func TestSetupExecSetsEveryPrimitiveIsAssigned(t *testing.T) {
	g := NewGraph(nil, testParams())
	a := CreatePrimitive(g, newAllGather(0, 0, 1))
	b := CreatePrimitive(g, newAllGather(8, 8, 1)) // independent head, same type: forces a second round
	AddWait(g, a, CreatePrimitive(g, newSend(1, AddrOperand(4), 1, false)))

	g.setupExecSets()

	for _, p := range g.Prims() {
		if p.ExecSet() < 0 || p.ExecSet() >= len(g.ExecSets()) {
			t.Fatalf("primitive %d has out-of-range exec set %d (have %d sets)", p.Index(), p.ExecSet(), len(g.ExecSets()))
		}
	}
	if b.ExecSet() < 0 {
		t.Fatal("independent head b must be assigned a set")
	}
}

func TestSubmitDrivesBackendInOrder(t *testing.T) {
	backend := newRecordingBackend()
	g := NewGraph(backend, testParams())
	head := CreatePrimitive(g, newAllGather(0, 0, 1))
	send := CreatePrimitive(g, newSend(1, AddrOperand(8), 1, false))
	AddWait(g, head, send)

	if err := g.Submit(); err != nil {
		t.Fatalf("Submit() = %v, want nil", err)
	}
	if backend.initGraphCalls != 1 || backend.finalizeGraphCalls != 1 {
		t.Fatalf("InitGraph/FinalizeGraph called %d/%d times, want 1/1", backend.initGraphCalls, backend.finalizeGraphCalls)
	}
	if len(backend.processed) == 0 {
		t.Fatal("expected at least one Process* callback")
	}
	if len(backend.processed) != 2 || backend.processed[0] != "AllGather" || backend.processed[1] != "Send" {
		t.Fatalf("processed = %v, want [AllGather Send] (type-tag order)", backend.processed)
	}
}

// recordingBackend is a minimal in-package Backend used where the
// cross-package testutil.MockBackend would create an import cycle
// (core cannot import internal/testutil, which imports core).
type recordingBackend struct {
	initGraphCalls, finalizeGraphCalls int
	processed                          []string
	lastReduceScatterDst               Operand
	lastReductionDst                   uint64
	lastSendCount, lastRecvCount       int
}

func newRecordingBackend() *recordingBackend { return &recordingBackend{} }

func (b *recordingBackend) InitGraph(g *Graph) (uint64, error) {
	b.initGraphCalls++
	return 0, nil
}
func (b *recordingBackend) FinalizeGraph(g *Graph, startVal uint64) error {
	b.finalizeGraphCalls++
	return nil
}
func (b *recordingBackend) InitExec(g *Graph, setIdx int) error     { return nil }
func (b *recordingBackend) FinalizeExec(g *Graph, setIdx int) error { return nil }
func (b *recordingBackend) ProcessAllGather(g *Graph, p *AllGatherPrim) error {
	b.processed = append(b.processed, "AllGather")
	return nil
}
func (b *recordingBackend) ProcessBroadcast(g *Graph, p *BroadcastPrim) error {
	b.processed = append(b.processed, "Broadcast")
	return nil
}
func (b *recordingBackend) ProcessReduceScatter(g *Graph, p *ReduceScatterPrim) error {
	b.processed = append(b.processed, "ReduceScatter")
	b.lastReduceScatterDst = p.Dst
	return nil
}
func (b *recordingBackend) ProcessSend(g *Graph, p *SendPrim) error {
	b.processed = append(b.processed, "Send")
	b.lastSendCount = p.Count
	return nil
}
func (b *recordingBackend) ProcessRecv(g *Graph, p *RecvPrim) error {
	b.processed = append(b.processed, "Recv")
	b.lastRecvCount = p.Count
	return nil
}
func (b *recordingBackend) ProcessReduction(g *Graph, p *ReductionPrim) error {
	b.processed = append(b.processed, "Reduction")
	b.lastReductionDst = p.DstAddr
	return nil
}
