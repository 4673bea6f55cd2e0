package core

import "testing"

func TestBufferTokenGeneratorStaticLimit(t *testing.T) {
	var g BufferTokenGenerator
	tok := g.Generate(StaticBuffer)
	if tok.Class != StaticBuffer || tok.Index != 0 {
		t.Fatalf("first STATIC token = %+v, want {STATIC 0}", tok)
	}
	if !g.HasAllocated(StaticBuffer) {
		t.Fatal("HasAllocated(StaticBuffer) = false after issuing one")
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic on second STATIC allocation")
		}
		if _, ok := r.(*ConstructionError); !ok {
			t.Fatalf("panic value is %T, want *ConstructionError", r)
		}
	}()
	g.Generate(StaticBuffer)
}

func TestBufferTokenGeneratorTempStaleness(t *testing.T) {
	var g BufferTokenGenerator
	first := g.Generate(TempBuffer)
	g.Verify(first) // fresh: no other TEMP token issued since

	g.Generate(TempBuffer)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic verifying a stale TEMP token")
		}
		ce, ok := r.(*ConstructionError)
		if !ok {
			t.Fatalf("panic value is %T, want *ConstructionError", r)
		}
		if ce.Invariant != "stale-temp-buffer" {
			t.Fatalf("Invariant = %q, want %q", ce.Invariant, "stale-temp-buffer")
		}
	}()
	g.Verify(first)
}

func TestBufferTokenGeneratorStaticAndInvalidNeverStale(t *testing.T) {
	var g BufferTokenGenerator
	static := g.Generate(StaticBuffer)
	g.Generate(TempBuffer)
	g.Generate(TempBuffer)
	g.Verify(static) // STATIC tokens are never subject to the staleness check
	g.Verify(BufferToken{})
}

func TestBufferTokenValid(t *testing.T) {
	if (BufferToken{}).Valid() {
		t.Fatal("zero-value BufferToken must be invalid")
	}
	if !(BufferToken{Class: TempBuffer, Index: 0}).Valid() {
		t.Fatal("a generated TEMP token must be valid")
	}
}
