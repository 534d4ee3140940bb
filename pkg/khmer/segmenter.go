package khmer

import (
	"strings"
	"sync"
)

const zeroWidthSpace = "\u200b"

// Segmenter segments Khmer text against a Dictionary using the Viterbi
// algorithm followed by three post-processing passes. A Segmenter is pure
// and safe for concurrent use from any number of goroutines given an
// immutable Dictionary: per-call DP scratch is drawn from an internal
// sync.Pool rather than owned by the Segmenter value itself, so unlike a
// bare per-goroutine buffer, a single Segmenter can be shared freely.
type Segmenter struct {
	dict    *Dictionary
	scratch sync.Pool
}

// NewSegmenter returns a Segmenter over dict. dict must already be loaded;
// a Segmenter never mutates it.
func NewSegmenter(dict *Dictionary) *Segmenter {
	s := &Segmenter{dict: dict}
	s.scratch.New = func() any { return &scratch{} }
	return s
}

// Segment strips any U+200B zero-width spaces, runs the Viterbi decoder,
// and applies the three post-processing passes in order. It returns an
// empty (non-nil) slice for empty input.
func (s *Segmenter) Segment(text string) []string {
	cleaned := text
	if strings.Contains(cleaned, zeroWidthSpace) {
		cleaned = strings.ReplaceAll(cleaned, zeroWidthSpace, "")
	}
	if cleaned == "" {
		return []string{}
	}

	cps := []rune(cleaned)

	buf := s.scratch.Get().(*scratch)
	raw := decode(s.dict, cps, buf)
	s.scratch.Put(buf)

	passA := snapInvalidSingles(raw, s.dict)
	passB := applyHeuristics(passA, s.dict)
	return coalesceUnknowns(passB, s.dict)
}

// SegmentOnce is a convenience wrapper for callers that don't want to
// construct a long-lived Segmenter; it allocates fresh scratch for the
// single call.
func SegmentOnce(dict *Dictionary, text string) []string {
	return NewSegmenter(dict).Segment(text)
}
