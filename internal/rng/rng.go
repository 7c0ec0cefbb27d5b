// Package rng provides string-keyed pseudo-random streams.
//
// A Stream is fully determined by its key: the same key yields the same
// sequence of draws on every run and every platform. Callers never share a
// stream between unrelated decisions; they derive a fresh key per purpose
// with DeriveKey instead.
package rng

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Stream is a splitmix64 generator seeded from the FNV-1a hash of its key.
type Stream struct {
	key   string
	state uint64
}

// New returns the stream for key.
func New(key string) *Stream {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return &Stream{key: key, state: h.Sum64()}
}

// For is shorthand for New(DeriveKey(...)).
func For(seed, purpose string, week, season int, entityIDs ...string) *Stream {
	return New(DeriveKey(seed, purpose, week, season, entityIDs...))
}

// DeriveKey builds "<seed>-<purpose>-<week>-<season>[-<entity>...]".
func DeriveKey(seed, purpose string, week, season int, entityIDs ...string) string {
	var b strings.Builder
	b.WriteString(seed)
	b.WriteByte('-')
	b.WriteString(purpose)
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(week))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(season))
	for _, id := range entityIDs {
		b.WriteByte('-')
		b.WriteString(id)
	}
	return b.String()
}

// Key reports the key the stream was created from.
func (s *Stream) Key() string { return s.key }

func (s *Stream) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a draw in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// Float returns a draw in [min, max).
func (s *Stream) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.Float64()*(max-min)
}

// Int returns a draw in [min, max], both ends inclusive.
func (s *Stream) Int(min, max int) int {
	if max <= min {
		return min
	}
	span := uint64(max-min) + 1
	return min + int(s.next()%span)
}

// Chance reports true with probability p. p <= 0 never draws true, p >= 1 always does.
func (s *Stream) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Normal returns an approximately normal draw (Box-Muller).
func (s *Stream) Normal(mean, stddev float64) float64 {
	u1 := s.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	u2 := s.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stddev
}

// Pick returns a uniformly chosen element; ok is false for an empty slice.
func Pick[T any](s *Stream, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[s.Int(0, len(items)-1)], true
}

// Shuffle returns a shuffled copy of items; the input is left untouched.
func Shuffle[T any](s *Stream, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.Int(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
