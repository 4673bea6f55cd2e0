package core

// AllReducePairwise lowers an all-reduce request into two Graphs submitted
// in sequence — reduce-scatter then all-gather — per §4.4.3 and the
// multi-phase design note in §9. params.Count is the total element count
// across all ranks and must be divisible by CommSize; violating that is a
// construction error, not a silent truncation.
//
// The reference implementation this is grounded on
// (hcl/src/collective_interface/collectives/all_reduce.cpp's ar_runPairwise)
// discards phase 1's submission result and returns only phase 2's. Per the
// open question recorded in spec §9 / DESIGN.md, this implementation
// instead short-circuits on phase 1's error.
func AllReducePairwise(backend Backend, params *CollectiveParams) error {
	comm := params.Comm
	commSize := comm.CommSize()

	verify(params.Count%commSize == 0, "all-reduce-divisibility", -1,
		"count (%d) must be divisible by comm_size (%d)", params.Count, commSize)

	if err := allReducePhase1ReduceScatter(backend, params); err != nil {
		return err
	}
	return allReducePhase2AllGather(backend, params)
}

func allReducePhase1ReduceScatter(backend Backend, params *CollectiveParams) error {
	comm := params.Comm
	g := NewGraph(backend, params)

	phaseParams := *params
	phaseParams.LoweredKind = ReduceScatter
	g.params = &phaseParams

	groupSize := comm.ScaleupGroupSize()
	myRank := comm.MyRank()
	myBox := comm.MyScaleupGroup()
	boxCount := BoxCount(comm)
	perBoxCount := params.Count / boxCount
	countPerRank := params.Count / comm.CommSize()
	elemSize := uint64(params.DType.Size())
	rankAddrOffset := uint64(countPerRank) * elemSize
	rankOffset := uint64(comm.RankInScaleupGroup()) * rankAddrOffset

	ownSliceAddr := params.SrcAddr + uint64(myBox)*uint64(perBoxCount)*elemSize

	var staticTok BufferToken
	rs0Dst := AddrOperand(params.DstAddr + rankOffset)
	if boxCount > 1 {
		staticTok = g.GenerateBufferToken(StaticBuffer)
		rs0Dst = TokenOperand(staticTok)
	}
	CreatePrimitive(g, newReduceScatter(ownSliceAddr, rs0Dst, perBoxCount))

	sendRank := (myRank + groupSize) % comm.CommSize()
	recvRank := (myRank - groupSize + comm.CommSize()) % comm.CommSize()

	for i := 1; i < boxCount; i++ {
		foreignBox := (myBox + i) % boxCount
		foreignSliceAddr := params.SrcAddr + uint64(foreignBox)*uint64(perBoxCount)*elemSize

		tempTok := g.GenerateBufferToken(TempBuffer)
		rsTemp := CreatePrimitive(g, newReduceScatter(foreignSliceAddr, TokenOperand(tempTok), perBoxCount))

		send := CreatePrimitive(g, newSend(sendRank, TokenOperand(tempTok), countPerRank, true))
		AddWait(g, rsTemp, send)

		recv := CreatePrimitive(g, newRecv(recvRank, TokenOperand(staticTok), countPerRank, true, false))

		if i == boxCount-1 {
			dstSliceAddr := params.DstAddr + uint64(myBox)*uint64(perBoxCount)*elemSize + rankOffset
			reduction := CreatePrimitive(g, newReduction(TokenOperand(staticTok), dstSliceAddr, countPerRank, false))
			AddWait(g, recv, reduction)
		}
	}

	return g.Submit()
}

func allReducePhase2AllGather(backend Backend, params *CollectiveParams) error {
	comm := params.Comm

	phaseParams := *params
	phaseParams.LoweredKind = AllGather
	countPerRank := params.Count / comm.CommSize()

	agParams := phaseParams
	agParams.Count = countPerRank
	agParams.SrcAddr = params.DstAddr
	agParams.DstAddr = params.DstAddr

	return allGatherPairwiseStrongOrder(backend, &agParams)
}

// allGatherPairwiseStrongOrder is AllGatherPairwise with strong_order_start
// set, used by phase 2 of all-reduce to chain onto phase 1 (§4.4.3, §9).
func allGatherPairwiseStrongOrder(backend Backend, params *CollectiveParams) error {
	comm := params.Comm
	g := NewGraph(backend, params)
	g.SetStrongOrderStart(true)

	groupSize := comm.ScaleupGroupSize()
	commSize := comm.CommSize()
	myRank := comm.MyRank()
	myBox := comm.MyScaleupGroup()
	boxCount := BoxCount(comm)
	slotSize := boxSlotSize(params.Count, params.DType, groupSize)

	CreatePrimitive(g, newAllGather(params.SrcAddr, params.DstAddr+uint64(myBox)*slotSize, params.Count))

	for i := 1; i < boxCount; i++ {
		peerRank := (myRank + i*groupSize) % commSize
		peerBox := peerRank / groupSize
		slotAddr := params.DstAddr + uint64(peerBox)*slotSize

		recv := CreatePrimitive(g, newRecv(peerRank, AddrOperand(slotAddr), params.Count, false, false))
		ag := CreatePrimitive(g, newAllGather(slotAddr, slotAddr, params.Count))
		AddWait(g, recv, ag)

		CreatePrimitive(g, newSend(peerRank, AddrOperand(params.SrcAddr), params.Count, false))
	}

	return g.Submit()
}
