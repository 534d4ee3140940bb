package khmer

import (
	"math"

	"github.com/rs/zerolog/log"
)

// scratch holds per-call DP arrays, grown geometrically and reused across
// calls on the same goroutine via the sync.Pool in segmenter.go.
type scratch struct {
	cost   []float32
	parent []int32
}

func (s *scratch) ensure(n int) {
	if cap(s.cost) >= n+1 {
		s.cost = s.cost[:n+1]
		s.parent = s.parent[:n+1]
		return
	}
	size := n + 1
	if grown := cap(s.cost) * 2; grown > size {
		size = grown
	}
	s.cost = make([]float32, n+1, size)
	s.parent = make([]int32, n+1, size)
}

const (
	repairPenalty     = 50.0
	numberStepCost    = 1.0
	separatorStepCost = 0.1
	acronymStepCost   = 1.0
	invalidSingleAdd  = 10.0
)

// decode runs the Viterbi forward pass over cps and returns the raw
// left-to-right segments via back-trace. cps must be non-empty.
func decode(dict *Dictionary, cps []rune, s *scratch) []string {
	n := len(cps)
	s.ensure(n)
	cost := s.cost
	parent := s.parent

	inf := float32(math.Inf(1))
	for i := range cost {
		cost[i] = inf
		parent[i] = -1
	}
	cost[0] = 0
	parent[0] = 0

	maxWordLen := dict.MaxWordLen()
	unknownCost := dict.UnknownCost()

	relax := func(j int, newCost float32, from int) {
		if newCost < cost[j] {
			cost[j] = newCost
			parent[j] = int32(from)
		}
	}

	for i := 0; i < n; i++ {
		if cost[i] == inf {
			continue
		}
		base := cost[i]
		c := cps[i]

		// Repair mode: checked first, exclusive of every other class.
		if (i > 0 && cps[i-1] == 0x17D2) || IsDependentVowel(c) {
			relax(i+1, base+unknownCost+repairPenalty, i)
			continue
		}

		// Class 1: number / currency group.
		triggersNumber := IsDigit(c) || (IsCurrency(c) && i+1 < n && IsDigit(cps[i+1]))
		if triggersNumber {
			if l := numberLength(cps, i, n); l > 0 {
				relax(i+l, base+numberStepCost, i)
			}
		} else if IsSeparator(c) {
			// Class 2: separator (only when the number trigger didn't fire).
			relax(i+1, base+separatorStepCost, i)
		}

		// Class 3: acronym.
		if acronymStart(cps, i, n) {
			l := acronymLength(cps, i, n)
			relax(i+l, base+acronymStepCost, i)
		}

		// Class 4: dictionary match, longest reachable span first isn't
		// required — every reachable j is relaxed independently.
		end := i + maxWordLen
		if end > n {
			end = n
		}
		for j := i + 1; j <= end; j++ {
			if wordCost, ok := dict.Lookup(cps, i, j); ok {
				relax(j, base+wordCost, i)
			}
		}

		// Class 5: unknown cluster, always emitted.
		if IsKhmer(c) {
			l := khmerClusterLength(cps, i, n)
			step := unknownCost
			if l == 1 && !IsValidSingle(c) {
				step += invalidSingleAdd
			}
			relax(i+l, base+step, i)
		} else {
			relax(i+1, base+unknownCost, i)
		}
	}

	return backtrace(cps, parent)
}

// backtrace walks parent from N to 0, reconstructing segments left to
// right. A parent of -1 before reaching 0 is a decoder bug (Class 5
// guarantees forward progress from every reachable position); it is logged
// and the back-trace is truncated rather than panicking.
func backtrace(cps []rune, parent []int32) []string {
	n := len(cps)
	segments := make([]string, 0, n/3+1)
	curr := n
	for curr > 0 {
		prev := int(parent[curr])
		if prev == -1 {
			logBacktraceGap(curr)
			break
		}
		segments = append(segments, string(cps[prev:curr]))
		curr = prev
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

func logBacktraceGap(position int) {
	log.Error().Int("position", position).
		Msg("decoder back-trace hit an unreachable position; truncating")
}
