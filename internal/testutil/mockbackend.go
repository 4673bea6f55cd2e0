package testutil

import (
	"sync"

	core "github.com/HabanaAI/HCL-sub006/core"
)

// RecordedOp is one backend callback captured by MockBackend, in call
// order, for assertions against §8's scenario primitive counts.
type RecordedOp struct {
	Kind    string // "InitGraph", "AllGather", "Send", "Recv", "Reduction", ...
	SetIdx  int    // valid for InitExec/FinalizeExec
	PrimIdx int    // valid for Process* callbacks, -1 otherwise
}

// MockBackend is a Backend that does no real data movement; it only
// records what the graph engine asked it to do, mirroring the C++ test
// suite's instrumented mock IHcclGraphEngine.
type MockBackend struct {
	mu  sync.Mutex
	Ops []RecordedOp

	// Fail, if non-nil, is returned by the Process callback named by key
	// ("AllGather", "Send", "Recv", "Reduction", "ReduceScatter",
	// "Broadcast") after the call has been recorded — used to exercise
	// error-propagation paths such as the all-reduce phase-1 failure.
	Fail map[string]error
}

// NewMockBackend returns an empty MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{Fail: make(map[string]error)}
}

func (m *MockBackend) record(kind string, setIdx, primIdx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ops = append(m.Ops, RecordedOp{Kind: kind, SetIdx: setIdx, PrimIdx: primIdx})
}

func (m *MockBackend) failed(kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fail[kind]
}

// CountKind returns how many recorded ops have the given Kind.
func (m *MockBackend) CountKind(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, op := range m.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (m *MockBackend) InitGraph(g *core.Graph) (uint64, error) {
	m.record("InitGraph", -1, -1)
	return 1, nil
}

func (m *MockBackend) FinalizeGraph(g *core.Graph, startVal uint64) error {
	m.record("FinalizeGraph", -1, -1)
	return nil
}

func (m *MockBackend) InitExec(g *core.Graph, setIdx int) error {
	m.record("InitExec", setIdx, -1)
	return nil
}

func (m *MockBackend) FinalizeExec(g *core.Graph, setIdx int) error {
	m.record("FinalizeExec", setIdx, -1)
	return nil
}

func (m *MockBackend) ProcessAllGather(g *core.Graph, p *core.AllGatherPrim) error {
	m.record("AllGather", p.ExecSet(), p.Index())
	return m.failed("AllGather")
}

func (m *MockBackend) ProcessBroadcast(g *core.Graph, p *core.BroadcastPrim) error {
	m.record("Broadcast", p.ExecSet(), p.Index())
	return m.failed("Broadcast")
}

func (m *MockBackend) ProcessReduceScatter(g *core.Graph, p *core.ReduceScatterPrim) error {
	m.record("ReduceScatter", p.ExecSet(), p.Index())
	return m.failed("ReduceScatter")
}

func (m *MockBackend) ProcessSend(g *core.Graph, p *core.SendPrim) error {
	m.record("Send", p.ExecSet(), p.Index())
	return m.failed("Send")
}

func (m *MockBackend) ProcessRecv(g *core.Graph, p *core.RecvPrim) error {
	m.record("Recv", p.ExecSet(), p.Index())
	return m.failed("Recv")
}

func (m *MockBackend) ProcessReduction(g *core.Graph, p *core.ReductionPrim) error {
	m.record("Reduction", p.ExecSet(), p.Index())
	return m.failed("Reduction")
}
