package core

import "testing"

func TestNewCommunicatorTopology(t *testing.T) {
	c := NewCommunicator(5, 8, 2)
	if c.MyRank() != 5 {
		t.Fatalf("MyRank() = %d, want 5", c.MyRank())
	}
	if c.CommSize() != 8 {
		t.Fatalf("CommSize() = %d, want 8", c.CommSize())
	}
	if got := c.MyScaleupGroup(); got != 2 {
		t.Fatalf("MyScaleupGroup() = %d, want 2", got)
	}
	if got := c.RankInScaleupGroup(); got != 1 {
		t.Fatalf("RankInScaleupGroup() = %d, want 1", got)
	}
	if got := c.RankToScaleupGroup(7); got != 3 {
		t.Fatalf("RankToScaleupGroup(7) = %d, want 3", got)
	}
	if got := BoxCount(c); got != 4 {
		t.Fatalf("BoxCount() = %d, want 4", got)
	}
}

func TestNewCommunicatorRejectsIndivisibleTopology(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non-divisible comm_size/scaleup_group_size pair")
		}
	}()
	NewCommunicator(0, 7, 2)
}

func TestDataTypeSize(t *testing.T) {
	cases := map[DataType]int{Float32: 4, Int32: 4, Float16: 2, BFloat16: 2}
	for dt, want := range cases {
		if got := dt.Size(); got != want {
			t.Fatalf("%v.Size() = %d, want %d", dt, got, want)
		}
	}
}

func TestCollectiveKindString(t *testing.T) {
	cases := map[CollectiveKind]string{
		AllGather:     "AllGather",
		AllReduce:     "AllReduce",
		ReduceScatter: "ReduceScatter",
		Broadcast:     "Broadcast",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
