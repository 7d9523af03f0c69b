// Package idgentest provides predictable identifiers for tests.
package idgentest

import (
	"strconv"
	"sync/atomic"
)

// Sequence hands out prefix-1, prefix-2, ...
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return s.prefix + "-" + strconv.FormatUint(s.next.Add(1), 10)
}
