package service

import "sync/atomic"

// Sequencer issues monotonically increasing search numbers so callers can
// drop results of a search that has since been superseded.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new sequence number and marks it as the latest.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Latest returns the most recently issued sequence number, or 0.
func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}

// IsLatest reports whether seq is the most recently issued number.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.latest.Load()
}
