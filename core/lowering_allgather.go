package core

// Indexing conventions shared by every lowering in this file, per §4.4:
// offset = count * dtype.Size(); boxCount = commSize / scaleupGroupSize;
// myBox = myRank / scaleupGroupSize.

func boxSlotSize(count int, dtype DataType, groupSize int) uint64 {
	return uint64(count*groupSize) * uint64(dtype.Size())
}

// AllGatherPairwise lowers an all-gather request into a Graph using the
// pairwise exchange pattern of §4.4.1. Grounded on
// hcl/src/collective_interface/collectives/all_gather.cpp's agRunPairwise.
func AllGatherPairwise(backend Backend, params *CollectiveParams) error {
	comm := params.Comm
	g := NewGraph(backend, params)

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

// AllGatherRing lowers an all-gather request into a Graph using the
// fixed-neighbor ring pattern of §4.4.2. Grounded on
// hcl/src/collective_interface/collectives/all_gather.cpp's agRunRing.
func AllGatherRing(backend Backend, params *CollectiveParams) error {
	comm := params.Comm
	g := NewGraph(backend, params)

	groupSize := comm.ScaleupGroupSize()
	commSize := comm.CommSize()
	myRank := comm.MyRank()
	myBox := comm.MyScaleupGroup()
	boxCount := BoxCount(comm)
	slotSize := boxSlotSize(params.Count, params.DType, groupSize)

	sendRank := (myRank + groupSize) % commSize
	recvRank := (myRank - groupSize + commSize) % commSize

	ag0 := CreatePrimitive(g, newAllGather(params.SrcAddr, params.DstAddr+uint64(myBox)*slotSize, params.Count))

	if boxCount > 1 {
		send0 := CreatePrimitive(g, newSend(sendRank, AddrOperand(params.SrcAddr), params.Count, false))
		AddWait(g, ag0, send0)
	}

	for i := 1; i < boxCount; i++ {
		recvSlotRank := (myRank - i*groupSize + commSize) % commSize
		recvBox := recvSlotRank / groupSize
		slotAddr := params.DstAddr + uint64(recvBox)*slotSize

		recv := CreatePrimitive(g, newRecv(recvRank, AddrOperand(slotAddr), params.Count, false, false))
		ag := CreatePrimitive(g, newAllGather(slotAddr, slotAddr, params.Count))
		AddWait(g, recv, ag)

		if i != boxCount-1 {
			send := CreatePrimitive(g, newSend(sendRank, AddrOperand(slotAddr), params.Count, false))
			AddWait(g, recv, send)
		}
	}

	return g.Submit()
}
