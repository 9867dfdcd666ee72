// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package arena defines an [Arena] type with compressed pointers.
//
// Parse trees are stored in arenas: each node is addressed by a four-byte
// [Pointer] rather than a Go pointer, which keeps trees compact and lets side
// tables (such as parent links) be plain slices indexed by pointer value.
package arena

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	minChunkShift = 4
	minChunkLen   = 1 << minChunkShift
)

// Pointer is a compressed arena pointer.
//
// The pointer value of a particular pointer in an arena is equal to one
// plus the number of elements allocated before it. The zero value is nil.
type Pointer[T any] uint32

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return p == 0
}

// Index returns the zero-based allocation index of this pointer.
//
// Panics if p is nil.
func (p Pointer[T]) Index() int {
	if p.Nil() {
		panic("arena: index of nil pointer")
	}
	return int(p) - 1
}

// In looks up this pointer in the given arena.
//
// arena must be the arena that allocated this pointer, otherwise this will
// either return an arbitrary value or panic.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(p)
}

// Arena is a slice of T that guarantees the Ts will never be moved once
// allocated.
//
// It does this by maintaining a table of chunks whose sizes double, mimicking
// the growth of an ordinary slice without copying. Lookup remains O(1).
//
// A zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(chunks[0]) == minChunkLen.
	// 2. cap(chunks[n]) == 2*cap(chunks[n-1]).
	// 3. len(chunks[n]) == cap(chunks[n]) for n < len(chunks)-1.
	chunks [][]T
}

// New allocates a new value on the arena.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.chunks == nil {
		a.chunks = [][]T{make([]T, 0, minChunkLen)}
	}

	last := &a.chunks[len(a.chunks)-1]
	if len(*last) == cap(*last) {
		a.chunks = append(a.chunks, make([]T, 0, 2*cap(*last)))
		last = &a.chunks[len(a.chunks)-1]
	}

	*last = append(*last, value)
	return Pointer[T](a.Len())
}

// At dereferences a pointer allocated by this arena.
//
// Panics if p is nil or out of range.
func (a *Arena[T]) At(p Pointer[T]) *T {
	chunk, idx := a.coordinates(p.Index())
	return &a.chunks[chunk][idx]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return a.lenOfFirstChunks(len(a.chunks)-1) + len(a.chunks[len(a.chunks)-1])
}

// All returns an iterator over every allocated value, in allocation order.
func (a *Arena[T]) All() iter.Seq2[Pointer[T], *T] {
	return func(yield func(Pointer[T], *T) bool) {
		n := Pointer[T](1)
		for i := range a.chunks {
			for j := range a.chunks[i] {
				if !yield(n, &a.chunks[i][j]) {
					return
				}
				n++
			}
		}
	}
}

// String implements [fmt.Stringer], showing chunk boundaries with |.
func (a *Arena[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, chunk := range a.chunks {
		if i != 0 {
			b.WriteByte('|')
		}
		for j, v := range chunk {
			if j != 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// lenOfFirstChunks returns the total capacity of the first n chunks.
//
// 2^m + 2^(m+1) + ... + 2^(m+n-1) = 2^(m+n) - 2^m.
func (*Arena[T]) lenOfFirstChunks(n int) int {
	return (minChunkLen << n) - minChunkLen
}

// coordinates returns the chunk and offset of the value at idx.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx < 0 || idx >= a.Len() {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx+1))
	}

	// Chunk n starts at (2^n - 1) << minChunkShift. Adding minChunkLen turns
	// that into 2^n << minChunkShift, whose high bit identifies n.
	chunk := bits.UintSize - bits.LeadingZeros(uint(idx)+minChunkLen) - (minChunkShift + 1)
	return chunk, idx - a.lenOfFirstChunks(chunk)
}
