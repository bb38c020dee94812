package bank

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Sequence issues unique account numbers. Injected so tests can supply a
// deterministic stub.
type Sequence interface {
	Next() string
}

// AccountNumberSequence issues "ACC"-prefixed numbers from an atomically
// incremented counter: each number is issued exactly once and the series is
// strictly increasing, so parallel account creation cannot collide.
type AccountNumberSequence struct {
	n atomic.Int64
}

// NewAccountNumberSequence starts the counter so the first Next returns
// start+1 (e.g. start 100000 yields ACC100001).
func NewAccountNumberSequence(start int64) *AccountNumberSequence {
	s := &AccountNumberSequence{}
	s.n.Store(start)
	return s
}

func (s *AccountNumberSequence) Next() string {
	return fmt.Sprintf("ACC%d", s.n.Add(1))
}

// Advance raises the counter to at least the numeric part of number, so
// numbers already present in storage are never reissued after a reload.
// Non-conforming numbers are ignored.
func (s *AccountNumberSequence) Advance(number string) {
	raw := strings.TrimPrefix(number, "ACC")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return
	}
	for {
		cur := s.n.Load()
		if cur >= n || s.n.CompareAndSwap(cur, n) {
			return
		}
	}
}
