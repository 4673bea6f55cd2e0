package core

// LogBackend is a Backend that performs no real data movement; it logs
// every callback via logrus: graph and exec-set brackets at debug level,
// primitive callbacks at info level. It exists for CLI
// demonstration and smoke-testing a topology/dispatch configuration
// without a hardware backend wired up, grounded on the teacher's
// dry-run/logging style of stubbing external collaborators.
type LogBackend struct{}

// NewLogBackend returns a Backend suitable for exercising lowerings and
// the dispatcher end to end with no hardware side effects.
func NewLogBackend() *LogBackend { return &LogBackend{} }

func (b *LogBackend) InitGraph(g *Graph) (uint64, error) {
	log.Debugf("log-backend: init graph for %s (lowered as %s)", g.Params().Op, g.Params().LoweredKind)
	return 0, nil
}

func (b *LogBackend) FinalizeGraph(g *Graph, startVal uint64) error {
	log.Debugf("log-backend: finalize graph for %s", g.Params().Op)
	return nil
}

func (b *LogBackend) InitExec(g *Graph, setIdx int) error {
	log.Debugf("log-backend: init exec set %d", setIdx)
	return nil
}

func (b *LogBackend) FinalizeExec(g *Graph, setIdx int) error {
	log.Debugf("log-backend: finalize exec set %d", setIdx)
	return nil
}

func (b *LogBackend) ProcessAllGather(g *Graph, p *AllGatherPrim) error {
	log.Infof("log-backend: AllGather[%d] src=0x%x dst=0x%x count=%d", p.Index(), p.SrcAddr, p.DstAddr, p.Count)
	return nil
}

func (b *LogBackend) ProcessBroadcast(g *Graph, p *BroadcastPrim) error {
	log.Infof("log-backend: Broadcast[%d] root=%d src=0x%x dst=0x%x count=%d", p.Index(), p.Root, p.SrcAddr, p.DstAddr, p.Count)
	return nil
}

func (b *LogBackend) ProcessReduceScatter(g *Graph, p *ReduceScatterPrim) error {
	log.Infof("log-backend: ReduceScatter[%d] src=0x%x count=%d", p.Index(), p.SrcAddr, p.Count)
	return nil
}

func (b *LogBackend) ProcessSend(g *Graph, p *SendPrim) error {
	log.Infof("log-backend: Send[%d] peer=%d count=%d reduce=%v", p.Index(), p.PeerRank, p.Count, p.DoReduction)
	return nil
}

func (b *LogBackend) ProcessRecv(g *Graph, p *RecvPrim) error {
	log.Infof("log-backend: Recv[%d] peer=%d count=%d reduce=%v", p.Index(), p.PeerRank, p.Count, p.DoReduction)
	return nil
}

func (b *LogBackend) ProcessReduction(g *Graph, p *ReductionPrim) error {
	log.Infof("log-backend: Reduction[%d] dst=0x%x count=%d", p.Index(), p.DstAddr, p.Count)
	return nil
}
