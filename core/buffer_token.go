package core

// BufferClass tags the allocation discipline of a BufferToken. Grounded on
// hcl/src/infra/buffer_handle_generator.h's BufferType enum.
type BufferClass int

const (
	// InvalidBuffer marks a token that was never allocated; the zero value
	// so an uninitialized BufferToken is unambiguously invalid.
	InvalidBuffer BufferClass = iota
	StaticBuffer
	TempBuffer
)

func (c BufferClass) String() string {
	switch c {
	case StaticBuffer:
		return "STATIC"
	case TempBuffer:
		return "TEMP"
	default:
		return "INVALID"
	}
}

// BufferToken is an opaque handle standing in for a scratch buffer the
// backend resolves to a concrete address at processing time. It is a value
// type: its validity is governed by the generator's staleness rule, not by
// storage lifetime.
type BufferToken struct {
	Class BufferClass
	Index uint64
}

// Valid reports whether the token was actually allocated.
func (t BufferToken) Valid() bool { return t.Class != InvalidBuffer }

// maxStatic bounds STATIC allocations to one per graph (invariant 4).
const maxStatic = 1

// BufferTokenGenerator issues BufferTokens and enforces the per-class
// allocation and staleness rules of §4.1. Grounded on
// hcl/src/infra/buffer_handle_generator.cpp.
type BufferTokenGenerator struct {
	counter [3]uint64 // indexed by BufferClass
}

// Generate returns the next token of the given class. STATIC is capped at
// maxStatic; exceeding it is a construction error. TEMP is unbounded.
func (g *BufferTokenGenerator) Generate(class BufferClass) BufferToken {
	verify(class == StaticBuffer || class == TempBuffer, "buffer-class", -1,
		"cannot generate a token of class %s", class)
	if class == StaticBuffer {
		verify(g.counter[StaticBuffer] < maxStatic, "static-overallocation", -1,
			"at most %d STATIC token(s) may be issued per graph", maxStatic)
	}
	idx := g.counter[class]
	g.counter[class]++
	return BufferToken{Class: class, Index: idx}
}

// Verify checks a TEMP token's staleness rule: it is valid only until the
// next TEMP token is issued by this generator. STATIC and INVALID tokens are
// always considered fresh (INVALID tokens are caught separately by the
// XOR invariant on primitive construction, not here).
func (g *BufferTokenGenerator) Verify(tok BufferToken) {
	if tok.Class != TempBuffer {
		return
	}
	verify(tok.Index == g.counter[TempBuffer]-1, "stale-temp-buffer", -1,
		"stale TEMP buffer: token index %d, %d TEMP token(s) issued since", tok.Index, g.counter[TempBuffer]-tok.Index-1)
}

// HasAllocated reports whether at least one token of the given class has
// been issued.
func (g *BufferTokenGenerator) HasAllocated(class BufferClass) bool {
	return g.counter[class] > 0
}
